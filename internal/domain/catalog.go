package domain

// CatalogItem is a named entry in one of the admin-managed lists
// (categories or payment types). Emoji is optional display decoration.
type CatalogItem struct {
	ID    int
	Name  string
	Emoji string
}

// Display returns the item name prefixed with its emoji, if any.
func (i CatalogItem) Display() string {
	if i.Emoji == "" {
		return i.Name
	}
	return i.Emoji + " " + i.Name
}
