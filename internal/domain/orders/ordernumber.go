package orders

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids/v2"
)

// ErrInvalidNumber is returned for strings that were not issued by the generator.
var ErrInvalidNumber = errors.New("invalid order number")

// Ambiguous characters (0, O, 1, I) are left out so numbers can be read over the phone.
const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NumberGenerator issues order numbers such as ORD-7KQ2XA91FM. The hashid
// is salted with a secret so numbers cannot be enumerated.
type NumberGenerator struct {
	prefix string
	h      *hashids.HashID
	now    func() time.Time
}

func NewNumberGenerator(prefix, secret string) (*NumberGenerator, error) {
	if prefix == "" {
		prefix = "ORD"
	}

	hd := hashids.NewData()
	hd.Salt = secret
	hd.MinLength = 10
	hd.Alphabet = numberAlphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("order numbers: %w", err)
	}
	return &NumberGenerator{prefix: prefix, h: h, now: time.Now}, nil
}

// Next encodes the user, the current second and a random nonce.
func (g *NumberGenerator) Next(userID int64) (string, error) {
	nonce := uuid.New()
	n := int64(binary.BigEndian.Uint16(nonce[:2]))

	tag, err := g.h.EncodeInt64([]int64{userID, g.now().Unix(), n})
	if err != nil {
		return "", fmt.Errorf("encode order number: %w", err)
	}
	return g.prefix + "-" + tag, nil
}

// Owner returns the user an order number was issued to.
func (g *NumberGenerator) Owner(number string) (int64, error) {
	tag, ok := strings.CutPrefix(number, g.prefix+"-")
	if !ok {
		return 0, ErrInvalidNumber
	}
	nums, err := g.h.DecodeInt64WithError(tag)
	if err != nil || len(nums) != 3 {
		return 0, ErrInvalidNumber
	}
	return nums[0], nil
}
