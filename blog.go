package paintdry

import "slices"

// MaxEntries is how many posts Entries returns at most.
const MaxEntries = 10

const (
	defaultTitle    = "Watching Paint Dry"
	defaultSubtitle = "The trusted source for drying paint news & opinion"
)

// Entry is anything the blog can take in. Adding an entry saves it.
type Entry interface {
	Save() error
}

// EntryFetcher returns the full, unordered collection of published posts.
type EntryFetcher func() ([]*Post, error)

// PostSource builds a new post from initial attributes.
type PostSource func(attrs Attrs) (*Post, error)

// Blog lists the most recent posts. It owns no storage: entries come from
// the fetcher and new posts from the post source.
type Blog struct {
	Title    string
	Subtitle string

	fetch  EntryFetcher
	source PostSource
}

// BlogOption configures a Blog.
type BlogOption func(*Blog)

// WithPostSource replaces the default NewPost constructor.
func WithPostSource(src PostSource) BlogOption {
	return func(b *Blog) {
		b.source = src
	}
}

// WithTitle sets the blog title.
func WithTitle(title string) BlogOption {
	return func(b *Blog) {
		if title != "" {
			b.Title = title
		}
	}
}

// WithSubtitle sets the blog subtitle.
func WithSubtitle(subtitle string) BlogOption {
	return func(b *Blog) {
		if subtitle != "" {
			b.Subtitle = subtitle
		}
	}
}

// NewBlog creates a blog reading its entries from fetch. A nil fetch
// yields a blog with no entries.
func NewBlog(fetch EntryFetcher, opts ...BlogOption) *Blog {
	b := &Blog{
		Title:    defaultTitle,
		Subtitle: defaultSubtitle,
		fetch:    fetch,
		source:   NewPost,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Entries returns at most MaxEntries posts, newest pubdate first. Posts
// sharing a pubdate keep the order the fetcher returned them in.
func (b *Blog) Entries() ([]*Post, error) {
	if b.fetch == nil {
		return nil, nil
	}
	all, err := b.fetch()
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(all)
	slices.SortStableFunc(sorted, func(x, y *Post) int {
		return y.PubDate.Compare(x.PubDate)
	})
	if len(sorted) > MaxEntries {
		sorted = sorted[:MaxEntries]
	}
	return sorted, nil
}

// NewPost builds a post through the post source and points it back at b.
// The post is not saved.
func (b *Blog) NewPost(attrs Attrs) (*Post, error) {
	p, err := b.source(attrs)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoPost
	}
	p.Blog = b
	return p, nil
}

// AddEntry saves entry.
func (b *Blog) AddEntry(entry Entry) error {
	return entry.Save()
}
