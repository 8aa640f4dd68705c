package projections

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"sporthall/internal/domain/content"
	"sporthall/internal/domain/document"
	"sporthall/internal/domain/gallery"
	"sporthall/internal/domain/partner"
)

// SiteContentLoader loads contacts and sports.
type SiteContentLoader interface {
	Load(ctx context.Context) (content.Content, error)
}

// SitePhotoLister lists gallery photos.
type SitePhotoLister interface {
	ListPhotos(ctx context.Context) ([]gallery.Photo, error)
}

// SitePartnerLister lists footer partners.
type SitePartnerLister interface {
	List(ctx context.Context) ([]partner.Partner, error)
}

// DocumentLinker resolves the public link of a footer document.
type DocumentLinker interface {
	DocumentURL(docType document.DocType) string
}

// GetPublicSiteDeps holds dependencies for the public site projection.
type GetPublicSiteDeps struct {
	Content   SiteContentLoader
	Gallery   SitePhotoLister
	Partners  SitePartnerLister
	Documents DocumentLinker
	Cache     *SiteCache
}

// DocumentLink is one footer document entry.
type DocumentLink struct {
	Type  document.DocType
	Title string
	URL   string
}

// PublicSite is everything the public page renders.
type PublicSite struct {
	Content  content.Content
	Photos   []gallery.Photo
	Partners []partner.Partner
	Docs     []DocumentLink

	// ContentStale is set when the Content Store failed and a cached or seeded copy is shown.
	ContentStale bool
	// GalleryUnavailable is set when photos could not be listed and nothing was cached.
	GalleryUnavailable bool
}

// GetPublicSite loads content, gallery and partners concurrently.
// A failing remote store never fails the page: content falls back to the last good copy, then to the defaults.
// PRE: none
// POST: returns an error only when ctx is cancelled
func GetPublicSite(ctx context.Context, deps GetPublicSiteDeps) (PublicSite, error) {
	var site PublicSite
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := deps.Content.Load(gctx)
		if err == nil {
			deps.Cache.StoreContent(c)
			site.Content = c
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		slog.Warn("site_content_load_failed", "error", err)
		site.ContentStale = true
		if cached, ok := deps.Cache.Content(); ok {
			site.Content = cached
		} else {
			site.Content = content.Defaults()
		}
		return nil
	})

	g.Go(func() error {
		gen := deps.Cache.GalleryGeneration()
		if cached, ok := deps.Cache.Gallery(); ok {
			site.Photos = cached
			return nil
		}
		photos, err := deps.Gallery.ListPhotos(gctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			slog.Warn("site_gallery_load_failed", "error", err)
			site.GalleryUnavailable = true
			return nil
		}
		if !deps.Cache.StoreGallery(gen, photos) {
			slog.Debug("site_gallery_cache_skipped", "reason", "invalidated_during_list")
		}
		site.Photos = photos
		return nil
	})

	g.Go(func() error {
		list, err := deps.Partners.List(gctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			slog.Error("site_partners_load_failed", "error", err)
			return nil
		}
		site.Partners = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return PublicSite{}, err
	}

	site.Docs = DocumentLinks(deps.Documents)
	return site, nil
}

// DocumentLinks lists every footer document in display order.
func DocumentLinks(l DocumentLinker) []DocumentLink {
	links := make([]DocumentLink, 0, len(document.All))
	for _, t := range document.All {
		links = append(links, DocumentLink{Type: t, Title: t.Title(), URL: l.DocumentURL(t)})
	}
	return links
}
