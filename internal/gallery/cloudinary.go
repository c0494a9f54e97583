package gallery

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"

	"github.com/Kuhaiku/cabana-2.0/internal/config"
	"github.com/Kuhaiku/cabana-2.0/internal/logger"
)

// Lister returns public URLs of the media assets shown in the site gallery.
type Lister interface {
	ListGalleryURLs(ctx context.Context) ([]string, error)
}

// CloudinaryGallery lists uploaded assets under a fixed folder of the
// Cloudinary account.
type CloudinaryGallery struct {
	cld        *cloudinary.Cloudinary
	folder     string
	maxResults int
	log        *logger.Logger
}

func NewCloudinaryGallery(cfg config.CloudinaryConfig, log *logger.Logger) (*CloudinaryGallery, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	log.LogProcess("GALLERY", fmt.Sprintf("Cloudinary gallery initialized for folder %s", cfg.GalleryFolder))
	return &CloudinaryGallery{
		cld:        cld,
		folder:     cfg.GalleryFolder,
		maxResults: cfg.MaxResults,
		log:        log,
	}, nil
}

func (g *CloudinaryGallery) ListGalleryURLs(ctx context.Context) ([]string, error) {
	res, err := g.cld.Admin.Assets(ctx, admin.AssetsParams{
		DeliveryType: "upload",
		Prefix:       g.folder,
		MaxResults:   g.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery assets: %w", err)
	}

	urls := make([]string, 0, len(res.Assets))
	for _, asset := range res.Assets {
		urls = append(urls, asset.SecureURL)
	}

	g.log.Info("GALLERY", fmt.Sprintf("Listed %d gallery assets", len(urls)))
	return urls, nil
}
