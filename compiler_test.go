package protolens

import (
	"errors"
	"testing"
)

const personSchema = `
syntax = "proto3";
package tutorial;

message Person {
  string name = 1;
  int32 id = 2;
  optional string email = 3;

  enum PhoneType {
    MOBILE = 0;
    HOME = 1;
    WORK = 2;
  }

  message PhoneNumber {
    string number = 1;
    PhoneType type = 2;
  }

  repeated PhoneNumber phones = 4;
  repeated int32 scores = 5;
  map<string, string> labels = 6;

  oneof contact {
    string handle = 7;
    int64 numeric_id = 8;
  }
}

message AddressBook {
  repeated Person people = 1;
}
`

func TestParseLinksSchema(t *testing.T) {
	ctx, err := Parse([]string{personSchema})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	person, ok := ctx.GetMessage("tutorial.Person")
	if !ok {
		t.Fatalf("Person not found")
	}

	nameField, ok := person.FieldByName("name")
	if !ok || nameField.Type.Category != ScalarFieldType || nameField.Type.Scalar != ScalarString {
		t.Errorf("name field = %+v", nameField)
	}
	if nameField.Multiplicity != Singular {
		t.Errorf("name Multiplicity = %v, want Singular", nameField.Multiplicity)
	}

	emailField, ok := person.FieldByName("email")
	if !ok || emailField.Multiplicity != Optional {
		t.Errorf("email field = %+v", emailField)
	}

	phonesField, ok := person.FieldByName("phones")
	if !ok || phonesField.Type.Category != MessageFieldType || phonesField.Multiplicity != Repeated {
		t.Errorf("phones field = %+v", phonesField)
	}
	phoneNumber := ctx.MessageByID(phonesField.Type.MessageID)
	if phoneNumber.FullName != "tutorial.Person.PhoneNumber" {
		t.Errorf("phones -> %q", phoneNumber.FullName)
	}

	scoresField, ok := person.FieldByName("scores")
	if !ok || scoresField.Multiplicity != RepeatedPacked {
		t.Errorf("scores field = %+v, want RepeatedPacked", scoresField)
	}

	labelsField, ok := person.FieldByName("labels")
	if !ok || labelsField.Type.Category != MessageFieldType {
		t.Fatalf("labels field = %+v", labelsField)
	}
	entry := ctx.MessageByID(labelsField.Type.MessageID)
	if !entry.IsMapEntry {
		t.Errorf("labels entry IsMapEntry = false, want true")
	}
	keyField, ok := entry.FieldByNumber(1)
	if !ok || keyField.Name != "key" || keyField.Type.Scalar != ScalarString {
		t.Errorf("map entry key field = %+v", keyField)
	}
	valueField, ok := entry.FieldByNumber(2)
	if !ok || valueField.Name != "value" || valueField.Type.Scalar != ScalarString {
		t.Errorf("map entry value field = %+v", valueField)
	}

	if len(person.Oneofs) != 1 || person.Oneofs[0].Name != "contact" {
		t.Fatalf("Oneofs = %+v", person.Oneofs)
	}
	handleField, _ := person.FieldByName("handle")
	if handleField.OneofIndex != 0 {
		t.Errorf("handle OneofIndex = %d, want 0", handleField.OneofIndex)
	}
	if got := person.Oneofs[0].FieldNumbers; len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Errorf("contact oneof FieldNumbers = %v", got)
	}

	phoneType, ok := ctx.GetEnum("tutorial.Person.PhoneType")
	if !ok {
		t.Fatalf("PhoneType not found")
	}
	if name, ok := phoneType.NameOf(1); !ok || name != "HOME" {
		t.Errorf("PhoneType.NameOf(1) = (%q, %v)", name, ok)
	}
	if n, ok := phoneType.NumberOf("WORK"); !ok || n != 2 {
		t.Errorf("PhoneType.NumberOf(WORK) = (%d, %v)", n, ok)
	}

	addressBook, ok := ctx.GetMessage("tutorial.AddressBook")
	if !ok {
		t.Fatalf("AddressBook not found")
	}
	peopleField, _ := addressBook.FieldByName("people")
	if ctx.MessageByID(peopleField.Type.MessageID) != person {
		t.Errorf("AddressBook.people does not resolve back to Person")
	}
}

func TestParseAcrossMultipleSources(t *testing.T) {
	fileA := `
syntax = "proto3";
package multi;
message A {
  B b = 1;
}
`
	fileB := `
syntax = "proto3";
package multi;
message B {
  string value = 1;
}
`
	ctx, err := Parse([]string{fileA, fileB})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	a, ok := ctx.GetMessage("multi.A")
	if !ok {
		t.Fatalf("A not found")
	}
	bField, ok := a.FieldByName("b")
	if !ok {
		t.Fatalf("A.b not found")
	}
	b := ctx.MessageByID(bField.Type.MessageID)
	if b.FullName != "multi.B" {
		t.Errorf("A.b -> %q, want multi.B", b.FullName)
	}
}

func TestParseServiceLinking(t *testing.T) {
	src := `
syntax = "proto3";
package rpcexample;

message Request { string query = 1; }
message Response { string result = 1; }

service Search {
  rpc Query(Request) returns (Response);
  rpc Stream(stream Request) returns (stream Response);
}
`
	ctx, err := Parse([]string{src})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	svc, ok := ctx.GetService("rpcexample.Search")
	if !ok {
		t.Fatalf("Search service not found")
	}
	query, ok := svc.RPCByName("Query")
	if !ok {
		t.Fatalf("Query rpc not found")
	}
	if ctx.MessageByID(query.RequestMessageID).FullName != "rpcexample.Request" {
		t.Errorf("Query request = %q", ctx.MessageByID(query.RequestMessageID).FullName)
	}
	stream, ok := svc.RPCByName("Stream")
	if !ok || !stream.RequestStreaming || !stream.ResponseStreaming {
		t.Errorf("Stream rpc = %+v", stream)
	}
}

func TestParseUnresolvedTypeIsSchemaError(t *testing.T) {
	src := `
syntax = "proto3";
message M {
  Nonexistent field = 1;
}
`
	_, err := Parse([]string{src})
	if err == nil {
		t.Fatalf("expected schema error")
	}
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if se.Kind != ErrUnresolvedType {
		t.Errorf("Kind = %v, want ErrUnresolvedType", se.Kind)
	}
}

func TestParseDuplicateTypeIsSchemaError(t *testing.T) {
	src := `
syntax = "proto3";
message M { string a = 1; }
message M { string b = 1; }
`
	_, err := Parse([]string{src})
	if err == nil {
		t.Fatalf("expected schema error")
	}
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if se.Kind != ErrDuplicateType {
		t.Errorf("Kind = %v, want ErrDuplicateType", se.Kind)
	}
}

func TestParseReservedFieldNumberIsSchemaError(t *testing.T) {
	src := `
syntax = "proto3";
message M {
  string a = 19500;
}
`
	_, err := Parse([]string{src})
	if err == nil {
		t.Fatalf("expected schema error")
	}
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if se.Kind != ErrInvalidFieldNumber {
		t.Errorf("Kind = %v, want ErrInvalidFieldNumber", se.Kind)
	}
}

func TestParseRelativeNameScopeWalk(t *testing.T) {
	src := `
syntax = "proto3";
package outer.inner;

message Container {
  message Nested {
    string value = 1;
  }
  Nested nested = 1;
}

message Sibling {
  outer.inner.Container.Nested borrowed = 1;
}
`
	ctx, err := Parse([]string{src})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sibling, ok := ctx.GetMessage("outer.inner.Sibling")
	if !ok {
		t.Fatalf("Sibling not found")
	}
	borrowed, ok := sibling.FieldByName("borrowed")
	if !ok {
		t.Fatalf("borrowed field not found")
	}
	if ctx.MessageByID(borrowed.Type.MessageID).FullName != "outer.inner.Container.Nested" {
		t.Errorf("borrowed -> %q", ctx.MessageByID(borrowed.Type.MessageID).FullName)
	}
}

func TestParsePropagatesParseError(t *testing.T) {
	_, err := Parse([]string{"syntax = \"proto3\"; message {"})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}
