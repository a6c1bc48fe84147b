package catalog

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

// Load reads the champion and trait tables and builds a Catalog.
//
// Both tables are JSON objects keyed by the stringified integer key:
//
//	champions: {"1": {"id": "Aatrox", "tier": 1, "traits": [3, 7]}, ...}
//	traits:    {"3": {"name": "Darkin", "min": 1}, ...}
//
// Unreadable input yields an error wrapping ErrLoad, anything that does not
// have that shape yields one wrapping ErrMalformed.
func Load(ctx context.Context, champions, traits io.Reader, opts ...Option) (*Catalog, error) {
	traitRaw, err := readTable(ctx, "traits", traits)
	if err != nil {
		return nil, err
	}
	champRaw, err := readTable(ctx, "champions", champions)
	if err != nil {
		return nil, err
	}

	traitList, err := parseTraits(traitRaw)
	if err != nil {
		return nil, err
	}
	pool, err := parseChampions(champRaw)
	if err != nil {
		return nil, err
	}
	return New(pool, traitList, opts...)
}

// LoadFiles is Load over two files on disk.
func LoadFiles(ctx context.Context, championsPath, traitsPath string, opts ...Option) (*Catalog, error) {
	cf, err := os.Open(championsPath)
	if err != nil {
		return nil, &LoadError{Op: "read", Table: "champions", Kind: ErrLoad, Err: err}
	}
	defer func() { _ = cf.Close() }()

	tf, err := os.Open(traitsPath)
	if err != nil {
		return nil, &LoadError{Op: "read", Table: "traits", Kind: ErrLoad, Err: err}
	}
	defer func() { _ = tf.Close() }()

	return Load(ctx, cf, tf, opts...)
}

func readTable(ctx context.Context, table string, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Op: "read", Table: table, Kind: ErrLoad, Err: err}
	}
	if r == nil {
		return nil, &LoadError{Op: "read", Table: table, Kind: ErrLoad, Err: fmt.Errorf("no source")}
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Op: "read", Table: table, Kind: ErrLoad, Err: err}
	}
	if !gjson.ValidBytes(raw) {
		return nil, &LoadError{Op: "parse", Table: table, Kind: ErrMalformed, Err: fmt.Errorf("invalid json")}
	}
	return raw, nil
}

func parseTraits(raw []byte) ([]Trait, error) {
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, malformed("traits", "expected object, got %s", root.Type)
	}

	var (
		out      []Trait
		parseErr error
	)
	root.ForEach(func(k, v gjson.Result) bool {
		key, err := strconv.Atoi(k.String())
		if err != nil {
			parseErr = malformed("traits", "non-integer key %q", k.String())
			return false
		}
		if !v.IsObject() {
			parseErr = malformed("traits", "trait %d: expected object", key)
			return false
		}
		name := v.Get("name")
		if name.Type != gjson.String {
			parseErr = malformed("traits", "trait %d: missing name", key)
			return false
		}
		minCount, ok := integer(v.Get("min"))
		if !ok {
			parseErr = malformed("traits", "trait %d: min must be an integer", key)
			return false
		}
		out = append(out, Trait{Key: key, Name: name.String(), Min: minCount})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

func parseChampions(raw []byte) ([]Champion, error) {
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, malformed("champions", "expected object, got %s", root.Type)
	}

	var (
		out      []Champion
		parseErr error
	)
	root.ForEach(func(k, v gjson.Result) bool {
		key, err := strconv.Atoi(k.String())
		if err != nil {
			parseErr = malformed("champions", "non-integer key %q", k.String())
			return false
		}
		if !v.IsObject() {
			parseErr = malformed("champions", "champion %d: expected object", key)
			return false
		}
		name := v.Get("id")
		if name.Type != gjson.String {
			parseErr = malformed("champions", "champion %d: missing id", key)
			return false
		}
		tier, ok := integer(v.Get("tier"))
		if !ok || tier < 0 {
			parseErr = malformed("champions", "champion %d: tier must be a non-negative integer", key)
			return false
		}
		tags := v.Get("traits")
		if !tags.IsArray() {
			parseErr = malformed("champions", "champion %d: traits must be an array", key)
			return false
		}
		var traits []int
		for _, t := range tags.Array() {
			tk, ok := integer(t)
			if !ok {
				parseErr = malformed("champions", "champion %d: trait keys must be integers", key)
				return false
			}
			traits = append(traits, tk)
		}
		out = append(out, Champion{Key: key, Name: name.String(), Tier: tier, Traits: traits})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

// integer reports the value of r when it is a JSON number without a fraction.
func integer(r gjson.Result) (int, bool) {
	if r.Type != gjson.Number {
		return 0, false
	}
	f := r.Float()
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(r.Int()), true
}
