package exhibit

// Partial names used by the post exhibits.
const (
	PicturePartial = "posts/picture_body"
	TextPartial    = "posts/text_body"
)

// Pictured is a post-like object that knows whether it carries an image.
type Pictured interface {
	IsPicture() bool
}

// BodyRenderer is implemented by exhibits that can render a post body.
type BodyRenderer interface {
	RenderBody() (string, error)
}

// PictureVariant applies to picture posts.
type PictureVariant struct{}

// ApplicableTo reports whether obj is a post with an image.
func (PictureVariant) ApplicableTo(obj any) bool {
	p, ok := obj.(Pictured)
	return ok && p.IsPicture()
}

// Wrap returns a *PicturePost.
func (PictureVariant) Wrap(obj any, ctx Context) any {
	return &PicturePost{Base: NewBase(obj, ctx), Pictured: obj.(Pictured)}
}

// TextVariant applies to posts without an image.
type TextVariant struct{}

// ApplicableTo reports whether obj is a post without an image.
func (TextVariant) ApplicableTo(obj any) bool {
	p, ok := obj.(Pictured)
	return ok && !p.IsPicture()
}

// Wrap returns a *TextPost.
func (TextVariant) Wrap(obj any, ctx Context) any {
	return &TextPost{Base: NewBase(obj, ctx), Pictured: obj.(Pictured)}
}

// PicturePost renders a post body around its image.
type PicturePost struct {
	Base
	Pictured
}

// RenderBody renders the picture body partial with the exhibit as "post".
func (p *PicturePost) RenderBody() (string, error) {
	return p.ctx.Render(PicturePartial, Locals{"post": p})
}

// TextPost renders a plain text post body.
type TextPost struct {
	Base
	Pictured
}

// RenderBody renders the text body partial with the exhibit as "post".
func (p *TextPost) RenderBody() (string, error) {
	return p.ctx.Render(TextPartial, Locals{"post": p})
}
