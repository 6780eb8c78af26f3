package model

// Post represents an article document from the content store
type Post struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	Slug           Slug     `json:"slug"`
	Image          *Image   `json:"image,omitempty"`          // Cover image
	Body           Document `json:"body,omitempty"`           // Portable-text body
	Tags           []string `json:"tags,omitempty"`           // Raw badge values
	Author         string   `json:"author,omitempty"`         // Author display name
	PublishedAt    string   `json:"publishedAt,omitempty"`    // RFC 3339 as stored
	Category       string   `json:"category,omitempty"`       // Home page category value
	CategoryWeight *float64 `json:"categoryWeight,omitempty"` // Sort weight within category, nil sorts last
}

// Slug is the URL-safe identifier of a post
type Slug struct {
	Current string `json:"current"`
}

// Image is an image reference with a resolved asset
type Image struct {
	Asset *Asset `json:"asset,omitempty"`
	Alt   string `json:"alt,omitempty"`
}

// Asset is a dereferenced media asset
type Asset struct {
	ID               string `json:"_id,omitempty"`
	URL              string `json:"url,omitempty"`
	MimeType         string `json:"mimeType,omitempty"`
	OriginalFilename string `json:"originalFilename,omitempty"`
}

// Document is an ordered sequence of portable-text blocks.
// Block order is presentation order.
type Document []Block

// Block type discriminants
const (
	BlockTypeText           = "block"
	BlockTypeImage          = "image"
	BlockTypeCarousel       = "carousel"
	BlockTypeFileAttachment = "fileAttachment"
	BlockTypeYouTube        = "youtube"
	BlockTypeTikTok         = "tiktok"
)

// Block is one portable-text block. Only the fields relevant to its
// type are populated; every field may be missing.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`    // normal, h1..h6, blockquote
	ListItem string    `json:"listItem,omitempty"` // bullet, number
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`

	// Media blocks
	Asset       *Asset  `json:"asset,omitempty"`
	Alt         string  `json:"alt,omitempty"`
	Slides      []Slide `json:"slides,omitempty"`
	URL         string  `json:"url,omitempty"`
	File        *File   `json:"file,omitempty"`
	Description string  `json:"description,omitempty"`
}

// IsText reports whether the block is a text block
func (b Block) IsText() bool {
	return b.Type == BlockTypeText
}

// Span is an inline run of text inside a text block
type Span struct {
	Type  string   `json:"_type,omitempty"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"` // Decorators or markDef keys
}

// MarkDef is an annotation referenced by span marks (e.g. a link)
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// Slide is one carousel image
type Slide struct {
	Asset *Asset `json:"asset,omitempty"`
}

// File is a file attachment reference
type File struct {
	Asset *Asset `json:"asset,omitempty"`
}
