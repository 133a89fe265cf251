package saltstream

// Tag is the per-message flag set carried in the encrypted framing byte
// of every chunk. Tags are authenticated and recovered by Pull.
type Tag uint8

const (
	// TagMessage marks an ordinary mid-stream message.
	TagMessage Tag = 0x00
	// TagPush marks the end of a logical unit within the stream. It is
	// advisory to the application and has no cryptographic effect.
	TagPush Tag = 0x01
	// TagRekey forces a rekey after this message, the same derivation as
	// counter exhaustion.
	TagRekey Tag = 0x02
	// TagFinal marks the last message of the stream.
	TagFinal Tag = TagPush | TagRekey
)

// tagMask covers every defined flag bit.
const tagMask = TagPush | TagRekey

// ParseTag validates a tag byte from untrusted input. Bytes with bits
// outside the defined flags fail with ErrInvalidTag.
func ParseTag(b byte) (Tag, error) {
	if Tag(b)&^tagMask != 0 {
		return 0, ErrInvalidTag
	}
	return Tag(b), nil
}

// Has reports whether t carries every flag in mask.
func (t Tag) Has(mask Tag) bool { return t&mask == mask }

func (t Tag) String() string {
	switch t {
	case TagMessage:
		return "MESSAGE"
	case TagPush:
		return "PUSH"
	case TagRekey:
		return "REKEY"
	case TagFinal:
		return "FINAL"
	default:
		return "INVALID"
	}
}
