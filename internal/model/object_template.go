package model

// ObjectTemplate describes one kind of gatherable object: its catalog name
// and the bounding box used for placement and overlap checks.
// Immutable after creation.
type ObjectTemplate struct {
	name        string
	displayName string
	extents     Vector3 // full size: width (X), depth (Y), height (Z)
}

// NewObjectTemplate creates a new object template.
func NewObjectTemplate(name, displayName string, extents Vector3) *ObjectTemplate {
	return &ObjectTemplate{
		name:        name,
		displayName: displayName,
		extents:     extents,
	}
}

// Name returns the catalog name the template is looked up by.
func (t *ObjectTemplate) Name() string {
	return t.name
}

// DisplayName returns the human-readable name.
func (t *ObjectTemplate) DisplayName() string {
	return t.displayName
}

// Extents returns the full bounding box size.
func (t *ObjectTemplate) Extents() Vector3 {
	return t.extents
}

// HalfHeight returns half the vertical extent.
// A placed object's center sits this far above its support surface.
func (t *ObjectTemplate) HalfHeight() float64 {
	return t.extents.Z / 2
}
