package hector

import "fmt"
import "strings"

import "github.com/gocql/gocql"

// ValueKind tags the set of value types a ValueCodec knows how to encode.
type ValueKind int

const (
	KindBlob ValueKind = iota
	KindVarchar
	KindBigInt
	KindBoolean
	KindDouble
	KindTimestamp
	KindUUID
	KindTimeUUID
)

var kindNames = [...]string{
	KindBlob:      "blob",
	KindVarchar:   "varchar",
	KindBigInt:    "bigint",
	KindBoolean:   "boolean",
	KindDouble:    "double",
	KindTimestamp: "timestamp",
	KindUUID:      "uuid",
	KindTimeUUID:  "timeuuid",
}

var kindTypes = [...]gocql.Type{
	KindBlob:      gocql.TypeBlob,
	KindVarchar:   gocql.TypeVarchar,
	KindBigInt:    gocql.TypeBigInt,
	KindBoolean:   gocql.TypeBoolean,
	KindDouble:    gocql.TypeDouble,
	KindTimestamp: gocql.TypeTimestamp,
	KindUUID:      gocql.TypeUUID,
	KindTimeUUID:  gocql.TypeTimeUUID,
}

func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
	return kindNames[k]
}

// The native protocol version used for type infos. Encodings of the kinds above do not differ
// between protocol versions 3 and 4.
const codecProtoVersion = 4

// A ValueCodec converts between Go values and the bytes stored in a column, following gocql's
// marshalling rules for its kind. The zero ValueCodec is invalid.
type ValueCodec struct {
	kind ValueKind
	info gocql.TypeInfo
}

func newValueCodec(kind ValueKind) ValueCodec {
	return ValueCodec{kind: kind, info: gocql.NewNativeType(codecProtoVersion, kindTypes[kind], "")}
}

var (
	BlobCodec      = newValueCodec(KindBlob)
	VarcharCodec   = newValueCodec(KindVarchar)
	BigIntCodec    = newValueCodec(KindBigInt)
	BooleanCodec   = newValueCodec(KindBoolean)
	DoubleCodec    = newValueCodec(KindDouble)
	TimestampCodec = newValueCodec(KindTimestamp)
	UUIDCodec      = newValueCodec(KindUUID)
	TimeUUIDCodec  = newValueCodec(KindTimeUUID)
)

var codecsByName = map[string]ValueCodec{
	"blob":      BlobCodec,
	"varchar":   VarcharCodec,
	"text":      VarcharCodec,
	"bigint":    BigIntCodec,
	"boolean":   BooleanCodec,
	"double":    DoubleCodec,
	"timestamp": TimestampCodec,
	"uuid":      UUIDCodec,
	"timeuuid":  TimeUUIDCodec,
}

// CodecFor returns the codec for a CQL type name such as "varchar" or "bigint". Matching is case
// insensitive.
func CodecFor(cqlType string) (ValueCodec, bool) {
	codec, ok := codecsByName[strings.ToLower(strings.TrimSpace(cqlType))]
	return codec, ok
}

func (c ValueCodec) Kind() ValueKind          { return c.kind }
func (c ValueCodec) TypeInfo() gocql.TypeInfo { return c.info }
func (c ValueCodec) Valid() bool              { return c.info != nil }

func (c ValueCodec) String() string {
	if !c.Valid() {
		return "<invalid codec>"
	}
	return c.kind.String()
}

// Marshal encodes value. Any Go type gocql accepts for the codec's kind may be given.
func (c ValueCodec) Marshal(value interface{}) ([]byte, error) {
	if !c.Valid() {
		return nil, ErrNoCodec
	}
	return gocql.Marshal(c.info, value)
}

// Unmarshal decodes data into dest, which must be a pointer.
func (c ValueCodec) Unmarshal(data []byte, dest interface{}) error {
	if !c.Valid() {
		return ErrNoCodec
	}
	return gocql.Unmarshal(c.info, data, dest)
}

// Codec encodes and decodes values of one Go type. Templates use a Codec for row keys and another
// for column names.
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}

// A Serializer is a ValueCodec bound to the Go type T.
type Serializer[T any] struct {
	ValueCodec
}

func NewSerializer[T any](codec ValueCodec) Serializer[T] {
	return Serializer[T]{codec}
}

func (s Serializer[T]) Encode(value T) ([]byte, error) {
	return s.Marshal(value)
}

func (s Serializer[T]) Decode(data []byte) (T, error) {
	var value T
	err := s.Unmarshal(data, &value)
	return value, err
}

var (
	StringSerializer   = Serializer[string]{VarcharCodec}
	BytesSerializer    = Serializer[[]byte]{BlobCodec}
	Int64Serializer    = Serializer[int64]{BigIntCodec}
	UUIDSerializer     = Serializer[gocql.UUID]{UUIDCodec}
	TimeUUIDSerializer = Serializer[gocql.UUID]{TimeUUIDCodec}
)
