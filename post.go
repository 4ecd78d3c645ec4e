package paintdry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrAlreadyPublished is returned when Publish is called on a post that
	// already has a pubdate.
	ErrAlreadyPublished = errors.New("paintdry: post already published")
	// ErrNoBlog is returned when a valid post is published without a blog.
	ErrNoBlog = errors.New("paintdry: post has no blog")
	// ErrNotAttached is returned by Save when no store backs the post.
	ErrNotAttached = errors.New("paintdry: post is not attached to a store")
	// ErrUnknownAttribute is returned by NewPost for keys it cannot assign.
	ErrUnknownAttribute = errors.New("paintdry: unknown post attribute")
	// ErrAttributeType is returned by NewPost when a value is not a string.
	ErrAttributeType = errors.New("paintdry: post attribute must be a string")
	// ErrNoPost is returned when a post source builds nothing.
	ErrNoPost = errors.New("paintdry: post source returned no post")
)

// Attrs are the initial attributes handed to a post source.
type Attrs map[string]any

// Clock is the time source used when publishing.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// EntryAdder is what a post publishes itself into. *Blog implements it.
type EntryAdder interface {
	AddEntry(entry Entry) error
}

// PostStore persists a single post. *Store implements it.
type PostStore interface {
	SavePost(p *Post) error
}

// Post is a blog entry. A post with a zero PubDate is a draft.
type Post struct {
	ID       int64
	PublicID string
	Title    string
	Body     string
	ImageURL string
	PubDate  time.Time
	Blog     EntryAdder

	store PostStore
}

// NewPost builds a draft post from attrs. Recognised keys are "title",
// "body" and "image_url".
func NewPost(attrs Attrs) (*Post, error) {
	p := &Post{}
	for k, v := range attrs {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T", ErrAttributeType, k, v)
		}
		switch k {
		case "title":
			p.Title = s
		case "body":
			p.Body = s
		case "image_url":
			p.ImageURL = s
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, k)
		}
	}
	return p, nil
}

// Valid reports whether the post may be published.
func (p *Post) Valid() bool {
	return strings.TrimSpace(p.Title) != ""
}

// IsPicture reports whether the post carries an image.
func (p *Post) IsPicture() bool {
	return strings.TrimSpace(p.ImageURL) != ""
}

// Published reports whether the post has gone through Publish.
func (p *Post) Published() bool {
	return !p.PubDate.IsZero()
}

// Link returns the public path of the post, or "" before it has an ID.
func (p *Post) Link() string {
	if p.PublicID == "" {
		return ""
	}
	return "/posts/" + p.PublicID + "/"
}

// Publish stamps the post with clock.Now() and hands it to its blog.
// An invalid post is left untouched and Publish returns false with a nil
// error. If the blog fails to take the entry, the pubdate is cleared again
// and the blog's error is returned as is. A nil clock means SystemClock.
func (p *Post) Publish(clock Clock) (bool, error) {
	if !p.Valid() {
		return false, nil
	}
	if p.Published() {
		return false, ErrAlreadyPublished
	}
	if p.Blog == nil {
		return false, ErrNoBlog
	}
	if clock == nil {
		clock = SystemClock
	}
	p.PubDate = clock.Now()
	if err := p.Blog.AddEntry(p); err != nil {
		p.PubDate = time.Time{}
		return false, err
	}
	return true, nil
}

// Save writes the post through the store it is attached to.
func (p *Post) Save() error {
	if p.store == nil {
		return ErrNotAttached
	}
	return p.store.SavePost(p)
}

// Attach sets the store Save writes through.
func (p *Post) Attach(s PostStore) {
	p.store = s
}
