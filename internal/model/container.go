package model

// ContainerSummary is the list projection of a container
type ContainerSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Image  string `json:"image"`
}

// ContainerRef is a resolved container handle
type ContainerRef struct {
	ID   string
	Name string
	TTY  bool // logs are not multiplexed when a TTY is attached
}

// UnknownImage is reported when an image has no tags or cannot be inspected
const UnknownImage = "unknown"

// ShortID returns the first 12 characters of a container id
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
