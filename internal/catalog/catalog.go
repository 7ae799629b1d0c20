package catalog

import "slices"

// Catalog is the read-only content source. Items keep the order in which
// they were supplied; callers sort by Order themselves.
type Catalog struct {
	tracks  []Track
	byTrack map[string][]ContentItem
	byID    map[string]ContentItem
}

// New builds a catalog from tracks in display order and their items.
// Items whose TrackID does not match a listed track are still indexed,
// so lookups by track id never lose data.
func New(tracks []Track, items []ContentItem) *Catalog {
	c := &Catalog{
		tracks:  slices.Clone(tracks),
		byTrack: make(map[string][]ContentItem, len(tracks)),
		byID:    make(map[string]ContentItem, len(items)),
	}
	for _, it := range items {
		c.byTrack[it.TrackID] = append(c.byTrack[it.TrackID], it)
		if _, dup := c.byID[it.ID]; !dup {
			c.byID[it.ID] = it
		}
	}
	return c
}

// Tracks returns all tracks in display order.
func (c *Catalog) Tracks() []Track {
	return slices.Clone(c.tracks)
}

// Track looks up a track by id.
func (c *Catalog) Track(id string) (Track, bool) {
	for _, t := range c.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Items returns a copy of the items for a track in catalog order.
// An unknown track id yields an empty list.
func (c *Catalog) Items(trackID string) []ContentItem {
	items := c.byTrack[trackID]
	if items == nil {
		return []ContentItem{}
	}
	return slices.Clone(items)
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (ContentItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Len returns the total number of items across all tracks.
func (c *Catalog) Len() int {
	n := 0
	for _, items := range c.byTrack {
		n += len(items)
	}
	return n
}
