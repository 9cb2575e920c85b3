package curve

import (
	_ "embed"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
	hex "github.com/tmthrgd/go-hex"
)

//go:embed catalog.toml
var catalogData []byte

type catalogEntry struct {
	Name     string   `toml:"name"`
	Aliases  []string `toml:"aliases"`
	Field    string   `toml:"field"`
	Modulus  string   `toml:"modulus"`
	A        string   `toml:"a"`
	B        string   `toml:"b"`
	Gx       string   `toml:"gx"`
	Gy       string   `toml:"gy"`
	Order    string   `toml:"order"`
	Cofactor string   `toml:"cofactor"`
}

type catalogFile struct {
	Curves []catalogEntry `toml:"curve"`
}

type catalog struct {
	names  []string
	byName map[string]Params
}

var (
	catalogOnce sync.Once
	namedCurves *catalog
	catalogErr  error
)

func loadCatalog() (*catalog, error) {
	catalogOnce.Do(func() {
		namedCurves, catalogErr = parseCatalog(catalogData)
		if catalogErr == nil {
			log.Debug("curve catalog loaded", "curves", len(namedCurves.names))
		}
	})
	return namedCurves, catalogErr
}

func parseCatalog(data []byte) (*catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "parsing curve catalog")
	}

	c := &catalog{byName: make(map[string]Params)}
	for _, entry := range file.Curves {
		params, err := entry.params()
		if err != nil {
			return nil, errors.Wrapf(err, "curve %s", entry.Name)
		}
		c.names = append(c.names, entry.Name)
		for _, name := range append([]string{entry.Name}, entry.Aliases...) {
			c.byName[strings.ToLower(name)] = params
		}
	}
	sort.Strings(c.names)
	return c, nil
}

func (e catalogEntry) params() (Params, error) {
	p := Params{Name: e.Name, Field: FieldType(e.Field)}
	fields := []struct {
		dst **big.Int
		src string
	}{
		{&p.Modulus, e.Modulus},
		{&p.A, e.A},
		{&p.B, e.B},
		{&p.Gx, e.Gx},
		{&p.Gy, e.Gy},
		{&p.N, e.Order},
		{&p.Cofactor, e.Cofactor},
	}
	for _, f := range fields {
		v, err := decodeHex(f.src)
		if err != nil {
			return Params{}, err
		}
		*f.dst = v
	}
	return p, nil
}

// decodeHex parses a big-endian hexadecimal integer of any length.
func decodeHex(s string) (*big.Int, error) {
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, err.Error())
	}
	return new(big.Int).SetBytes(b), nil
}

// CurveNames returns the canonical names of the catalog curves.
func CurveNames() []string {
	c, err := loadCatalog()
	if err != nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// NamedParams returns the domain parameters of a catalog curve. Names and
// aliases are matched case-insensitively.
func NamedParams(name string) (Params, error) {
	c, err := loadCatalog()
	if err != nil {
		return Params{}, err
	}
	p, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return Params{}, errors.Wrapf(algebra.ErrInvalidParameter, "unknown curve %q", name)
	}
	return p.copy(), nil
}

// Named returns the catalog curve with generic arithmetic.
func Named(name string, opts ...algebra.Option) (*Curve, error) {
	p, err := NamedParams(name)
	if err != nil {
		return nil, err
	}
	return NewCurve(p, opts...)
}

// SecP256k1 returns the secp256k1 curve.
func SecP256k1(opts ...algebra.Option) (*Curve, error) { return Named("secp256k1", opts...) }
