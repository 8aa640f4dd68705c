package projections

import (
	"sync"
	"time"

	"sporthall/internal/domain/content"
	"sporthall/internal/domain/gallery"
)

// SiteCache holds the last content the Content Store confirmed, plus the gallery until the next refresh event.
// It is the only shared copy of site data in the process; readers always receive deep copies.
type SiteCache struct {
	mu         sync.RWMutex
	content    content.Content
	hasContent bool
	loadedAt   time.Time

	photos    []gallery.Photo
	hasPhotos bool

	// galleryGen counts invalidations; a list started before one must not be cached after it.
	galleryGen uint64
}

// NewSiteCache creates an empty cache.
func NewSiteCache() *SiteCache {
	return &SiteCache{}
}

// Content returns the cached content. ok is false until something was stored.
func (c *SiteCache) Content() (content.Content, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasContent {
		return content.Content{}, false
	}
	return c.content.Clone(), true
}

// LoadedAt is when content was last stored. Zero until the first confirmed load.
func (c *SiteCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// StoreContent replaces the cached content with a confirmed copy.
func (c *SiteCache) StoreContent(v content.Content) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = v.Clone()
	c.hasContent = true
	c.loadedAt = time.Now()
}

// SetContacts records confirmed contacts. Without a cached baseline it does nothing,
// so a partial record can never pose as a full load.
func (c *SiteCache) SetContacts(v content.Contact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasContent {
		c.content.Contacts = v
	}
}

// SetSports records a confirmed catalog. Same baseline rule as SetContacts.
func (c *SiteCache) SetSports(v []content.Sport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasContent {
		c.content.Sports = content.Content{Sports: v}.Clone().Sports
	}
}

// Gallery returns the cached photos. ok is false after an invalidation.
func (c *SiteCache) Gallery() ([]gallery.Photo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasPhotos {
		return nil, false
	}
	return append([]gallery.Photo(nil), c.photos...), true
}

// GalleryGeneration is read before listing photos and handed back to StoreGallery.
func (c *SiteCache) GalleryGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.galleryGen
}

// StoreGallery caches a gallery listed at generation gen.
// POST: returns false and caches nothing when InvalidateGallery ran since gen was read
func (c *SiteCache) StoreGallery(gen uint64, photos []gallery.Photo) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.galleryGen {
		return false
	}
	c.photos = append([]gallery.Photo(nil), photos...)
	c.hasPhotos = true
	return true
}

// InvalidateGallery forces the next reader to re-list photos and voids lists already in flight.
func (c *SiteCache) InvalidateGallery() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.photos = nil
	c.hasPhotos = false
	c.galleryGen++
}
