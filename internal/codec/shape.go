package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// shape lists what a wire object must carry before it is decoded into a Go
// type. Optional scalars are not listed; encoding/json already checks their
// JSON types.
type shape struct {
	required       []string
	objects        []member
	optional       []member
	arrays         []member
	optionalArrays []member
}

type member struct {
	name  string
	shape shape
}

var (
	assetShape = shape{required: []string{"blockchain", "symbol"}}

	tickerAssetShape = shape{required: []string{"blockchain", "symbol", "ticker"}}

	tokenShape = shape{required: []string{"blockchain", "symbol", "decimals"}}

	swapperShape = shape{required: []string{"id"}}

	routeShape = shape{
		required: []string{"outputAmount"},
		objects:  []member{{"swapper", swapperShape}},
		optional: []member{
			{"amountRestriction", shape{required: []string{"type"}}},
		},
		arrays: []member{
			{"fee", shape{
				required: []string{"amount"},
				objects:  []member{{"asset", assetShape}},
			}},
		},
		optionalArrays: []member{
			{"path", shape{
				required: []string{"expectedOutput"},
				objects: []member{
					{"from", tokenShape},
					{"to", tokenShape},
					{"swapper", swapperShape},
				},
			}},
		},
	}

	swapResponseShape = shape{
		required: []string{"requestId", "resultType"},
		optional: []member{{"route", routeShape}},
	}

	evmShape = shape{required: []string{"blockChain", "txTo"}}

	cosmosShape = shape{
		required: []string{"blockChain", "fromWalletAddress"},
		objects: []member{
			{"data", shape{
				required: []string{"signType"},
				optional: []member{
					{"fee", shape{
						required: []string{"gas"},
						arrays: []member{
							{"amount", shape{required: []string{"amount", "denom"}}},
						},
					}},
				},
			}},
			{"rawTransfer", shape{
				required: []string{"amount", "decimals", "method", "recipient"},
				objects:  []member{{"asset", tickerAssetShape}},
			}},
		},
	}

	transferShape = shape{
		required: []string{"method", "amount", "decimals", "fromWalletAddress", "recipientAddress"},
		objects:  []member{{"asset", tickerAssetShape}},
	}
)

// object is one level of the generic tree: a JSON object whose members are
// kept undecoded until their shape is known.
type object struct {
	path   string
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

func asObject(raw json.RawMessage, path string) (object, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return object{}, mismatch(path, "object", raw)
	}
	return object{path: path, raw: raw, fields: fields}, nil
}

// get treats an explicit null like an absent member. Arrays are the
// exception, see checkItems.
func (o object) get(name string) (json.RawMessage, bool) {
	raw, ok := o.fields[name]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func (o object) str(name string) (string, error) {
	raw, ok := o.get(name)
	if !ok {
		return "", missing(join(o.path, name))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", mismatch(join(o.path, name), "string", raw)
	}
	return s, nil
}

func (o object) child(name string) (object, bool, error) {
	raw, ok := o.get(name)
	if !ok {
		return object{}, false, nil
	}
	child, err := asObject(raw, join(o.path, name))
	return child, true, err
}

func (o object) check(s shape) error {
	for _, name := range s.required {
		if _, ok := o.get(name); !ok {
			return missing(join(o.path, name))
		}
	}
	for _, m := range s.objects {
		if err := o.checkChild(m, true); err != nil {
			return err
		}
	}
	for _, m := range s.optional {
		if err := o.checkChild(m, false); err != nil {
			return err
		}
	}
	for _, m := range s.arrays {
		if err := o.checkItems(m, true); err != nil {
			return err
		}
	}
	for _, m := range s.optionalArrays {
		if err := o.checkItems(m, false); err != nil {
			return err
		}
	}
	return nil
}

func (o object) checkChild(m member, required bool) error {
	child, ok, err := o.child(m.name)
	if err != nil {
		return err
	}
	if !ok {
		if required {
			return missing(join(o.path, m.name))
		}
		return nil
	}
	return child.check(m.shape)
}

func (o object) checkItems(m member, required bool) error {
	path := join(o.path, m.name)
	raw, ok := o.fields[m.name]
	if !ok {
		if required {
			return missing(path)
		}
		return nil
	}
	// null is the empty list and decodes to a nil slice
	if isNull(raw) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return mismatch(path, "array", raw)
	}
	for i, item := range items {
		child, err := asObject(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return err
		}
		if err := child.check(m.shape); err != nil {
			return err
		}
	}
	return nil
}

// decode checks the shape, then decodes the whole object into v.
func (o object) decode(s shape, v any) error {
	if err := o.check(s); err != nil {
		return err
	}
	if err := json.Unmarshal(o.raw, v); err != nil {
		return fromUnmarshal(o.path, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
