package paintdry

import (
	"errors"
	"fmt"

	"github.com/sqids/sqids-go"
)

// ErrInvalidPublicID is returned when a public ID does not decode to a post ID.
var ErrInvalidPublicID = errors.New("paintdry: invalid public id")

const defaultIDMinLength = 6

// IDCodec converts database post IDs to the short IDs used in URLs.
type IDCodec struct {
	s *sqids.Sqids
}

// NewIDCodec creates a codec producing IDs of at least minLength characters.
func NewIDCodec(minLength uint8) (*IDCodec, error) {
	s, err := sqids.New(sqids.Options{MinLength: minLength})
	if err != nil {
		return nil, fmt.Errorf("paintdry: init id codec: %w", err)
	}
	return &IDCodec{s: s}, nil
}

// Encode returns the public form of id.
func (c *IDCodec) Encode(id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidPublicID, id)
	}
	return c.s.Encode([]uint64{uint64(id)})
}

// Decode returns the post ID behind publicID. Only the canonical encoding
// of an ID is accepted.
func (c *IDCodec) Decode(publicID string) (int64, error) {
	nums := c.s.Decode(publicID)
	if len(nums) != 1 || nums[0] == 0 {
		return 0, ErrInvalidPublicID
	}
	canonical, err := c.s.Encode(nums)
	if err != nil || canonical != publicID {
		return 0, ErrInvalidPublicID
	}
	return int64(nums[0]), nil
}
