package ai

import (
	"context"
	"path/filepath"

	"exposurestats/internal/config"
	"exposurestats/internal/dto"
	"exposurestats/internal/logger"
	"exposurestats/internal/service/imaging"
)

// Pipeline runs the whole tagging flow for one image: load, scale down,
// query the model.
type Pipeline struct {
	cfg    *config.Config
	log    *logger.Logger
	tagger Tagger
}

func NewPipeline(cfg *config.Config, log *logger.Logger, tagger Tagger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, tagger: tagger}
}

// TagImage tags an image. Relative paths resolve against the library root.
func (p *Pipeline) TagImage(ctx context.Context, imagePath string) (*dto.TagResult, error) {
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(p.cfg.LibraryPath, imagePath)
	}

	data, err := imaging.FileToJPEG(imagePath, imaging.DefaultSize)
	if err != nil {
		return nil, err
	}

	resp, err := p.tagger.TagImage(ctx, data)
	if err != nil {
		return nil, err
	}
	p.log.Info("tagged %s: %v", imagePath, resp.Tags)

	return &dto.TagResult{
		Name:           filepath.Base(imagePath),
		Tags:           resp.Tags,
		AdditionalTags: resp.AdditionalTags,
		Explanation:    resp.Explanation,
	}, nil
}
