package exhibit

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/a-h/templ"
)

type stubPost struct {
	title   string
	picture bool
}

func (p *stubPost) IsPicture() bool { return p.picture }
func (p *stubPost) Title() string   { return p.title }

type renderCall struct {
	partial string
	locals  Locals
}

type recordingContext struct {
	calls []renderCall
	out   string
	err   error
}

func (c *recordingContext) Render(partial string, locals Locals) (string, error) {
	c.calls = append(c.calls, renderCall{partial: partial, locals: locals})
	return c.out, c.err
}

func TestDefaultWrapsPicturePosts(t *testing.T) {
	post := &stubPost{picture: true}
	got := Default().Exhibit(post, &recordingContext{})
	if _, ok := got.(*PicturePost); !ok {
		t.Fatalf("expected *PicturePost, got %T", got)
	}
}

func TestDefaultWrapsTextPosts(t *testing.T) {
	post := &stubPost{picture: false}
	got := Default().Exhibit(post, &recordingContext{})
	if _, ok := got.(*TextPost); !ok {
		t.Fatalf("expected *TextPost, got %T", got)
	}
}

func TestUnknownObjectsPassThrough(t *testing.T) {
	model := &struct{ Name string }{Name: "plain"}
	got := Default().Exhibit(model, &recordingContext{})
	if got != any(model) {
		t.Fatalf("expected the same object back, got %#v", got)
	}
}

func TestZeroSelectorPassesEverythingThrough(t *testing.T) {
	post := &stubPost{picture: true}
	var s Selector
	if got := s.Exhibit(post, nil); got != any(post) {
		t.Fatalf("expected the same object back, got %T", got)
	}
}

func TestPictureAndTextAreExclusive(t *testing.T) {
	for _, picture := range []bool{true, false} {
		got := Default().Exhibit(&stubPost{picture: picture}, &recordingContext{})
		w, ok := got.(Wrapper)
		if !ok {
			t.Fatalf("picture=%v: expected a wrapper, got %T", picture, got)
		}
		if _, nested := w.Model().(Wrapper); nested {
			t.Fatalf("picture=%v: post was wrapped twice", picture)
		}
	}
}

func TestExhibitDelegatesToPost(t *testing.T) {
	post := &stubPost{title: "Title", picture: true}
	got := Default().Exhibit(post, &recordingContext{}).(*PicturePost)

	if !got.IsPicture() {
		t.Error("IsPicture should forward to the post")
	}
	if got.Model() != any(post) {
		t.Error("Model should return the wrapped post")
	}
	if got.ModelType() != reflect.TypeOf(post) {
		t.Errorf("ModelType = %v, want %v", got.ModelType(), reflect.TypeOf(post))
	}
	p, ok := As[*stubPost](got)
	if !ok || p.Title() != "Title" {
		t.Errorf("As should reach the post, got %v, %v", p, ok)
	}
}

func TestRenderBodyUsesVariantPartial(t *testing.T) {
	tests := []struct {
		picture bool
		partial string
	}{
		{true, PicturePartial},
		{false, TextPartial},
	}
	for _, tt := range tests {
		ctx := &recordingContext{out: "The_HTML"}
		got := Default().Exhibit(&stubPost{picture: tt.picture}, ctx)

		html, err := got.(BodyRenderer).RenderBody()
		if err != nil {
			t.Fatalf("RenderBody: %v", err)
		}
		if html != "The_HTML" {
			t.Errorf("RenderBody = %q, want %q", html, "The_HTML")
		}
		if len(ctx.calls) != 1 {
			t.Fatalf("expected 1 render call, got %d", len(ctx.calls))
		}
		call := ctx.calls[0]
		if call.partial != tt.partial {
			t.Errorf("partial = %q, want %q", call.partial, tt.partial)
		}
		if call.locals["post"] != got {
			t.Errorf("locals[post] should be the exhibit itself")
		}
	}
}

func TestRenderBodyReturnsContextError(t *testing.T) {
	boom := errors.New("boom")
	got := Default().Exhibit(&stubPost{}, &recordingContext{err: boom})
	if _, err := got.(BodyRenderer).RenderBody(); err != boom {
		t.Fatalf("expected the context error unchanged, got %v", err)
	}
}

type badge struct {
	Base
	Pictured
}

func TestLaterVariantsSeeWrappedValue(t *testing.T) {
	post := &stubPost{picture: true}
	var seen []any
	badgeRule := Rule{
		Applies: func(obj any) bool {
			seen = append(seen, obj)
			_, ok := obj.(Pictured)
			return ok
		},
		Build: func(obj any, ctx Context) any {
			return &badge{Base: NewBase(obj, ctx), Pictured: obj.(Pictured)}
		},
	}

	got := Default().With(badgeRule).Exhibit(post, &recordingContext{})

	if len(seen) != 1 {
		t.Fatalf("expected badge rule to be asked once, got %d", len(seen))
	}
	if _, ok := seen[0].(*PicturePost); !ok {
		t.Fatalf("badge rule should see the picture exhibit, saw %T", seen[0])
	}
	b, ok := got.(*badge)
	if !ok {
		t.Fatalf("expected *badge outermost, got %T", got)
	}
	if _, ok := b.Model().(*PicturePost); !ok {
		t.Errorf("badge should wrap the picture exhibit, wraps %T", b.Model())
	}
	if Unwrap(got) != any(post) {
		t.Error("Unwrap should return the original post")
	}
	if b.ModelType() != reflect.TypeOf(post) {
		t.Errorf("ModelType = %v, want %v", b.ModelType(), reflect.TypeOf(post))
	}
}

func TestVariantOrderDecidesWrapping(t *testing.T) {
	// A variant that hides the image makes the picture variant after it
	// skip the post and the text variant pick it up instead.
	hide := Rule{
		Applies: func(obj any) bool { _, ok := obj.(*stubPost); return ok },
		Build:   func(obj any, ctx Context) any { return &hidden{Base: NewBase(obj, ctx)} },
	}
	post := &stubPost{picture: true}

	got := NewSelector(hide, PictureVariant{}, TextVariant{}).Exhibit(post, nil)
	if _, ok := got.(*TextPost); !ok {
		t.Fatalf("expected *TextPost, got %T", got)
	}

	got = NewSelector(PictureVariant{}, hide, TextVariant{}).Exhibit(post, nil)
	if _, ok := got.(*PicturePost); !ok {
		t.Fatalf("expected *PicturePost, got %T", got)
	}
}

type hidden struct {
	Base
}

func (hidden) IsPicture() bool { return false }

func TestWithLeavesOriginalUntouched(t *testing.T) {
	base := Default()
	extended := base.With(Rule{
		Applies: func(any) bool { return true },
		Build:   func(obj any, ctx Context) any { return "wrapped" },
	})
	model := &struct{}{}
	if got := base.Exhibit(model, nil); got != any(model) {
		t.Errorf("base selector changed: got %v", got)
	}
	if got := extended.Exhibit(model, nil); got != "wrapped" {
		t.Errorf("extended selector = %v, want wrapped", got)
	}
}

func TestAll(t *testing.T) {
	posts := []*stubPost{{picture: true}, {picture: false}}
	got := All(Default(), posts, nil)
	if _, ok := got[0].(*PicturePost); !ok {
		t.Errorf("got[0] = %T, want *PicturePost", got[0])
	}
	if _, ok := got[1].(*TextPost); !ok {
		t.Errorf("got[1] = %T, want *TextPost", got[1])
	}
}

func TestTemplContextRendersPartial(t *testing.T) {
	partials := Partials{
		TextPartial: func(locals Locals) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				_, err := io.WriteString(w, "<p>"+locals["post"].(*TextPost).Model().(*stubPost).title+"</p>")
				return err
			})
		},
	}
	ctx := NewTemplContext(context.Background(), partials)
	post := Default().Exhibit(&stubPost{title: "Drying"}, ctx).(*TextPost)

	html, err := post.RenderBody()
	if err != nil {
		t.Fatalf("RenderBody: %v", err)
	}
	if html != "<p>Drying</p>" {
		t.Errorf("RenderBody = %q", html)
	}

	pic := Default().Exhibit(&stubPost{picture: true}, ctx).(*PicturePost)
	if _, err := pic.RenderBody(); !errors.Is(err, ErrUnknownPartial) {
		t.Errorf("expected ErrUnknownPartial, got %v", err)
	}
}
