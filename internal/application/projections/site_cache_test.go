package projections

import (
	"testing"

	"sporthall/internal/domain/content"
	"sporthall/internal/domain/gallery"
)

func TestSiteCache_PartialUpdatesNeedBaseline(t *testing.T) {
	c := NewSiteCache()
	c.SetContacts(content.Contact{Phone: "1"})
	if _, ok := c.Content(); ok {
		t.Fatal("contacts alone must not create a cached load")
	}

	c.StoreContent(content.Defaults())
	c.SetContacts(content.Contact{Phone: "1"})
	got, ok := c.Content()
	if !ok || got.Contacts.Phone != "1" {
		t.Fatalf("Content = %+v, %v", got.Contacts, ok)
	}
	if len(got.Sports) != len(content.Defaults().Sports) {
		t.Error("sports lost on contacts update")
	}
}

func TestSiteCache_ReturnsCopies(t *testing.T) {
	c := NewSiteCache()
	c.StoreContent(content.Defaults())
	got, _ := c.Content()
	got.Sports[0].Rules[0] = "mutated"
	again, _ := c.Content()
	if again.Sports[0].Rules[0] == "mutated" {
		t.Error("caller mutation leaked into cache")
	}

	c.StoreGallery(c.GalleryGeneration(), []gallery.Photo{{ID: "1"}})
	photos, _ := c.Gallery()
	photos[0].ID = "x"
	again2, _ := c.Gallery()
	if again2[0].ID != "1" {
		t.Error("gallery mutation leaked into cache")
	}
	c.InvalidateGallery()
	if _, ok := c.Gallery(); ok {
		t.Error("gallery still cached after invalidation")
	}
}

func TestSiteCache_StoreGalleryAfterInvalidationIsDropped(t *testing.T) {
	c := NewSiteCache()
	gen := c.GalleryGeneration()
	c.InvalidateGallery()

	if c.StoreGallery(gen, []gallery.Photo{{ID: "old"}}) {
		t.Error("list read before the invalidation was accepted")
	}
	if _, ok := c.Gallery(); ok {
		t.Error("stale gallery cached")
	}

	if !c.StoreGallery(c.GalleryGeneration(), []gallery.Photo{{ID: "new"}}) {
		t.Fatal("current generation rejected")
	}
	photos, ok := c.Gallery()
	if !ok || photos[0].ID != "new" {
		t.Errorf("Gallery() = %v, %v", photos, ok)
	}
}
