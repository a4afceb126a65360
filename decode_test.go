package protolens

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustParse(t *testing.T, src string) *Context {
	t.Helper()
	ctx, err := Parse([]string{src})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return ctx
}

const simpleSchema = `
syntax = "proto3";
package simple;

message Inner {
  string tag = 1;
}

message Outer {
  string name = 1;
  int32 id = 2;
  repeated int32 scores = 3;
  Inner inner = 4;
  MyEnum status = 5;
}

enum MyEnum {
  UNKNOWN = 0;
  ACTIVE = 1;
  DONE = 2;
}
`

func TestDecodeBasicFields(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, ok := ctx.GetMessage("simple.Outer")
	if !ok {
		t.Fatalf("Outer not found")
	}

	var data []byte
	data = appendTag(data, 1, lenWireType)
	data = appendBytes(data, []byte("alice"))
	data = appendTag(data, 2, varintWireType)
	data = appendVarint(data, 42)

	msg := outer.Decode(data, ctx)
	if len(msg.Fields) != 2 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	if got, ok := msg.Fields[0].Value.(StringValue); !ok || string(got) != "alice" {
		t.Errorf("field 1 = %+v", msg.Fields[0])
	}
	if got, ok := msg.Fields[1].Value.(Int32Value); !ok || int32(got) != 42 {
		t.Errorf("field 2 = %+v", msg.Fields[1])
	}
	if msg.Garbage != nil {
		t.Errorf("Garbage = %v, want nil", msg.Garbage)
	}
}

func TestDecodePackedRepeatedScalar(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	var packedPayload []byte
	packedPayload = appendVarint(packedPayload, 10)
	packedPayload = appendVarint(packedPayload, 20)
	packedPayload = appendVarint(packedPayload, 30)

	var data []byte
	data = appendTag(data, 3, lenWireType)
	data = appendBytes(data, packedPayload)

	msg := outer.Decode(data, ctx)
	if len(msg.Fields) != 1 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	pa, ok := msg.Fields[0].Value.(PackedArray)
	if !ok || pa.Kind != PackedInt32 {
		t.Fatalf("field = %+v", msg.Fields[0])
	}
	if diff := cmp.Diff([]int32{10, 20, 30}, pa.Int32s); diff != "" {
		t.Errorf("Int32s mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnpackedScalarOnPackedField(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	// scores is RepeatedPacked, but a writer may still emit its elements
	// one at a time in their native wire type (varint, for int32) instead
	// of batching them into one packed LEN value. Both forms are legal.
	var data []byte
	data = appendTag(data, 3, varintWireType)
	data = appendVarint(data, 99)
	data = appendTag(data, 3, varintWireType)
	data = appendVarint(data, 100)

	msg := outer.Decode(data, ctx)
	if len(msg.Fields) != 2 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	if got, ok := msg.Fields[0].Value.(Int32Value); !ok || int32(got) != 99 {
		t.Errorf("field 1 = %+v", msg.Fields[0])
	}
	if got, ok := msg.Fields[1].Value.(Int32Value); !ok || int32(got) != 100 {
		t.Errorf("field 2 = %+v", msg.Fields[1])
	}
}

func TestDecodeWireTypeMismatchOnPackedFieldBecomesUnknown(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	// scores is a packed repeated int32, whose native wire type is varint.
	// fixed32 matches neither the packed (LEN) nor the native (varint)
	// encoding, so it is a genuine mismatch.
	var data []byte
	data = appendTag(data, 3, fixed32WireType)
	data = appendFixed32(data, 99)

	msg := outer.Decode(data, ctx)
	if len(msg.Fields) != 1 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	uv, ok := msg.Fields[0].Value.(UnknownFieldValue)
	if !ok || uv.Kind != UnknownFixed32 {
		t.Fatalf("field = %+v", msg.Fields[0])
	}
}

func TestDecodeInvalidUTF8StringBecomesIncomplete(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	// 0xff is not a valid UTF-8 lead byte in any position.
	var data []byte
	data = appendTag(data, 1, lenWireType)
	data = appendBytes(data, []byte{0xff, 0xfe})

	msg := outer.Decode(data, ctx)
	if len(msg.Fields) != 1 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	iv, ok := msg.Fields[0].Value.(IncompleteValue)
	if !ok || iv.WireType != lenWireType {
		t.Fatalf("field = %+v", msg.Fields[0])
	}
	if diff := cmp.Diff([]byte{0xff, 0xfe}, iv.Raw[len(iv.Raw)-2:]); diff != "" {
		t.Errorf("raw payload mismatch (-want +got):\n%s", diff)
	}

	// Raw keeps the field's length prefix as well as its payload, so
	// re-encoding reproduces the input.
	reencoded := msg.Encode(ctx)
	if diff := cmp.Diff(data, reencoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownFieldNumber(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	var data []byte
	data = appendTag(data, 99, varintWireType)
	data = appendVarint(data, 7)

	msg := outer.Decode(data, ctx)
	if len(msg.Fields) != 1 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	uv, ok := msg.Fields[0].Value.(UnknownFieldValue)
	if !ok || uv.Kind != UnknownVarint {
		t.Fatalf("field = %+v", msg.Fields[0])
	}
}

func TestDecodeNestedMessage(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")
	inner, _ := ctx.GetMessage("simple.Inner")

	var innerBytes []byte
	innerBytes = appendTag(innerBytes, 1, lenWireType)
	innerBytes = appendBytes(innerBytes, []byte("x"))

	var data []byte
	data = appendTag(data, 4, lenWireType)
	data = appendBytes(data, innerBytes)

	msg := outer.Decode(data, ctx)
	nested, ok := msg.Fields[0].Value.(*MessageValue)
	if !ok {
		t.Fatalf("field = %+v", msg.Fields[0])
	}
	if nested.MessageID != inner.ID() {
		t.Errorf("MessageID = %d, want %d", nested.MessageID, inner.ID())
	}
	if got, ok := nested.Fields[0].Value.(StringValue); !ok || string(got) != "x" {
		t.Errorf("nested field = %+v", nested.Fields[0])
	}
}

func TestDecodeEnumField(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")
	myEnum, _ := ctx.GetEnum("simple.MyEnum")

	var data []byte
	data = appendTag(data, 5, varintWireType)
	data = appendVarint(data, 1)

	msg := outer.Decode(data, ctx)
	ev, ok := msg.Fields[0].Value.(EnumFieldValue)
	if !ok || ev.Number != 1 || ev.EnumID != myEnum.ID() {
		t.Fatalf("field = %+v", msg.Fields[0])
	}
	if name, ok := myEnum.NameOf(ev.Number); !ok || name != "ACTIVE" {
		t.Errorf("NameOf(1) = (%q, %v)", name, ok)
	}
}

func TestDecodeTruncatedVarintBecomesIncomplete(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	// A varint tag for field 2 (id) followed by a continuation byte with no
	// terminator: the value is truncated.
	data := []byte{byte(2<<3 | 0), 0x80}

	msg := outer.Decode(data, ctx)
	if len(msg.Fields) != 1 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	if _, ok := msg.Fields[0].Value.(IncompleteValue); !ok {
		t.Errorf("field = %+v, want IncompleteValue", msg.Fields[0])
	}
}

func TestDecodeNeverPanicsOnGarbageBytes(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	inputs := [][]byte{
		nil,
		{0xff},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		{0x0b}, // wire type 3, a deprecated group start: invalid for proto3
		{1, 2, 3, 4, 5},
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Decode(%x) panicked: %v", in, r)
				}
			}()
			outer.Decode(in, ctx)
		}()
	}
}

func TestDecodeRespectsMaxDepthOnSelfReferentialMessage(t *testing.T) {
	src := `
syntax = "proto3";
message Node {
  Node child = 1;
  string value = 2;
}
`
	ctx := mustParse(t, src)
	node, _ := ctx.GetMessage("Node")

	// Build a payload that nests eight levels deep.
	var data []byte
	data = appendTag(data, 2, lenWireType)
	data = appendBytes(data, []byte("leaf"))
	for i := 0; i < 8; i++ {
		var wrapped []byte
		wrapped = appendTag(wrapped, 1, lenWireType)
		wrapped = appendBytes(wrapped, data)
		data = wrapped
	}

	msg := node.DecodeWithOptions(data, ctx, DecodeOptions{MaxDepth: 3})
	depth := 0
	cur := msg
	for {
		if len(cur.Fields) == 0 {
			break
		}
		child, ok := cur.Fields[0].Value.(*MessageValue)
		if !ok {
			// Hit the depth cap: the remaining LEN payload became Unknown.
			if _, ok := cur.Fields[0].Value.(UnknownFieldValue); !ok {
				t.Fatalf("expected UnknownFieldValue at cap, got %+v", cur.Fields[0])
			}
			break
		}
		cur = child
		depth++
		if depth > 10 {
			t.Fatalf("decoding did not stop at MaxDepth")
		}
	}
	if depth != 3 {
		t.Errorf("decoded depth = %d, want 3 (MaxDepth)", depth)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	var innerBytes []byte
	innerBytes = appendTag(innerBytes, 1, lenWireType)
	innerBytes = appendBytes(innerBytes, []byte("x"))

	var data []byte
	data = appendTag(data, 1, lenWireType)
	data = appendBytes(data, []byte("alice"))
	data = appendTag(data, 2, varintWireType)
	data = appendVarint(data, 42)
	var packedPayload []byte
	packedPayload = appendVarint(packedPayload, 1)
	packedPayload = appendVarint(packedPayload, 2)
	data = appendTag(data, 3, lenWireType)
	data = appendBytes(data, packedPayload)
	data = appendTag(data, 4, lenWireType)
	data = appendBytes(data, innerBytes)
	data = appendTag(data, 5, varintWireType)
	data = appendVarint(data, 2)

	msg := outer.Decode(data, ctx)
	reencoded := msg.Encode(ctx)
	if diff := cmp.Diff(data, reencoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodePreservesTrailingGarbage(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	var data []byte
	data = appendTag(data, 2, varintWireType)
	data = appendVarint(data, 5)
	data = append(data, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01)

	msg := outer.Decode(data, ctx)
	if msg.Garbage == nil {
		t.Fatalf("expected Garbage to be recorded, got nil")
	}
	reencoded := msg.Encode(ctx)
	if diff := cmp.Diff(data, reencoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip with garbage mismatch (-want +got):\n%s", diff)
	}
}

const mapSchema = `
syntax = "proto3";
package mapexample;

message Config {
  map<string, int32> m = 1;
}
`

// TestDecodeMapField exercises synthesizeMapEntry's output through Decode:
// a map<string, int32> field decodes exactly like a repeated field of its
// synthesized MEntry message, with no map-specific code path in decode.go.
func TestDecodeMapField(t *testing.T) {
	ctx := mustParse(t, mapSchema)
	config, ok := ctx.GetMessage("mapexample.Config")
	if !ok {
		t.Fatalf("Config not found")
	}

	mField, ok := config.FieldByName("m")
	if !ok || mField.Type.Category != MessageFieldType || mField.Multiplicity != Repeated {
		t.Fatalf("m field = %+v", mField)
	}
	entry := ctx.MessageByID(mField.Type.MessageID)
	if entry.FullName != "mapexample.Config.MEntry" || !entry.IsMapEntry {
		t.Fatalf("map entry = %+v", entry)
	}

	var entryBytes []byte
	entryBytes = appendTag(entryBytes, 1, lenWireType)
	entryBytes = appendBytes(entryBytes, []byte("a"))
	entryBytes = appendTag(entryBytes, 2, varintWireType)
	entryBytes = appendVarint(entryBytes, 7)

	var data []byte
	data = appendTag(data, 1, lenWireType)
	data = appendBytes(data, entryBytes)

	msg := config.Decode(data, ctx)
	if len(msg.Fields) != 1 {
		t.Fatalf("Fields = %+v", msg.Fields)
	}
	entryValue, ok := msg.Fields[0].Value.(*MessageValue)
	if !ok || entryValue.MessageID != entry.ID() {
		t.Fatalf("m field value = %+v", msg.Fields[0])
	}
	if len(entryValue.Fields) != 2 {
		t.Fatalf("entry Fields = %+v", entryValue.Fields)
	}
	if got, ok := entryValue.Fields[0].Value.(StringValue); !ok || string(got) != "a" || entryValue.Fields[0].Number != 1 {
		t.Errorf("entry key field = %+v", entryValue.Fields[0])
	}
	if got, ok := entryValue.Fields[1].Value.(Int32Value); !ok || int32(got) != 7 || entryValue.Fields[1].Number != 2 {
		t.Errorf("entry value field = %+v", entryValue.Fields[1])
	}

	reencoded := msg.Encode(ctx)
	if diff := cmp.Diff(data, reencoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTripUnknownField(t *testing.T) {
	ctx := mustParse(t, simpleSchema)
	outer, _ := ctx.GetMessage("simple.Outer")

	var data []byte
	data = appendTag(data, 42, lenWireType)
	data = appendBytes(data, []byte("mystery"))

	msg := outer.Decode(data, ctx)
	reencoded := msg.Encode(ctx)
	if diff := cmp.Diff(data, reencoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
