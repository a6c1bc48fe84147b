package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/synergy/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

const championsJSON = `{
  "1": {"id": "Aatrox", "tier": 1, "traits": [10]},
  "2": {"id": "Braum", "tier": 2, "traits": [10, 20]},
  "3": {"id": "Caitlyn", "tier": 1, "traits": [20]}
}`

const traitsJSON = `{
  "10": {"name": "Vanguard", "min": 2},
  "20": {"name": "Sniper", "min": 1}
}`

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLoad(t *testing.T) {
	Convey("Given well-formed champion and trait tables", t, func() {
		ctx := context.Background()

		Convey("When loading with default options", func() {
			c, err := catalog.Load(ctx, strings.NewReader(championsJSON), strings.NewReader(traitsJSON))

			Convey("Then the catalog should expose every champion and trait", func() {
				So(err, ShouldBeNil)
				So(c.PoolSize(), ShouldEqual, 3)
				So(c.Champion(2).Name, ShouldEqual, "Braum")
				So(c.Champion(2).Tier, ShouldEqual, 2)
				So(c.Champion(2).Traits, ShouldResemble, []int{10, 20})

				tr, ok := c.Trait(10)
				So(ok, ShouldBeTrue)
				So(tr.Name, ShouldEqual, "Vanguard")
				So(tr.Min, ShouldEqual, 2)
			})

			Convey("And it should use the default scoring configuration", func() {
				So(c.Mode(), ShouldEqual, catalog.ModeStandUnited)
				So(c.WeightTiers(), ShouldBeFalse)
				So(c.TierCoefficient(), ShouldEqual, 1.0)
			})

			Convey("And listings should be ordered by key", func() {
				champs := c.Champions()
				So(len(champs), ShouldEqual, 3)
				So(champs[0].Key, ShouldEqual, 1)
				So(champs[2].Key, ShouldEqual, 3)

				traits := c.Traits()
				So(len(traits), ShouldEqual, 2)
				So(traits[0].Key, ShouldEqual, 10)
				So(traits[1].Key, ShouldEqual, 20)
			})

			Convey("And listings should be copies", func() {
				champs := c.Champions()
				champs[0].Traits[0] = 99
				So(c.Champion(1).Traits[0], ShouldEqual, 10)
			})
		})

		Convey("When loading with options", func() {
			c, err := catalog.Load(ctx, strings.NewReader(championsJSON), strings.NewReader(traitsJSON),
				catalog.WithWeightTiers(true),
				catalog.WithTierCoefficient(2.5),
				catalog.WithMode(catalog.ModeBuiltDifferent),
			)

			Convey("Then the options should be applied", func() {
				So(err, ShouldBeNil)
				So(c.WeightTiers(), ShouldBeTrue)
				So(c.TierCoefficient(), ShouldEqual, 2.5)
				So(c.Mode(), ShouldEqual, catalog.ModeBuiltDifferent)
			})
		})
	})

	Convey("Given broken sources", t, func() {
		ctx := context.Background()

		Convey("When the champion source cannot be read", func() {
			_, err := catalog.Load(ctx, failingReader{}, strings.NewReader(traitsJSON))

			Convey("Then a load error should be returned", func() {
				So(errors.Is(err, catalog.ErrLoad), ShouldBeTrue)
				var le *catalog.LoadError
				So(errors.As(err, &le), ShouldBeTrue)
				So(le.Table, ShouldEqual, "champions")
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := catalog.Load(cctx, strings.NewReader(championsJSON), strings.NewReader(traitsJSON))

			Convey("Then a load error should be returned", func() {
				So(errors.Is(err, catalog.ErrLoad), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		malformedCases := map[string][2]string{
			"invalid json":         {`{"1": {`, traitsJSON},
			"array root":           {`[]`, traitsJSON},
			"non-integer key":      {`{"one": {"id": "A", "tier": 1, "traits": []}}`, traitsJSON},
			"missing id":           {`{"1": {"tier": 1, "traits": []}}`, traitsJSON},
			"fractional tier":      {`{"1": {"id": "A", "tier": 1.5, "traits": []}}`, traitsJSON},
			"traits not an array":  {`{"1": {"id": "A", "tier": 1, "traits": 10}}`, traitsJSON},
			"gap in keys":          {`{"1": {"id": "A", "tier": 1, "traits": []}, "3": {"id": "B", "tier": 1, "traits": []}}`, traitsJSON},
			"unknown trait":        {`{"1": {"id": "A", "tier": 1, "traits": [77]}}`, traitsJSON},
			"empty pool":           {`{}`, traitsJSON},
			"trait missing min":    {championsJSON, `{"10": {"name": "Vanguard"}, "20": {"name": "Sniper", "min": 1}}`},
			"trait key not number": {championsJSON, `{"x": {"name": "Vanguard", "min": 2}}`},
		}
		for name, tables := range malformedCases {
			Convey("When the tables have "+name, func() {
				c, err := catalog.Load(ctx, strings.NewReader(tables[0]), strings.NewReader(tables[1]))

				Convey("Then a malformed catalog error should be returned", func() {
					So(c, ShouldBeNil)
					So(errors.Is(err, catalog.ErrMalformed), ShouldBeTrue)
				})
			})
		}
	})
}

func TestLoadFiles(t *testing.T) {
	Convey("Given catalog files on disk", t, func() {
		dir := t.TempDir()
		champs := filepath.Join(dir, "champions.json")
		traits := filepath.Join(dir, "traits.json")
		So(os.WriteFile(champs, []byte(championsJSON), 0o600), ShouldBeNil)
		So(os.WriteFile(traits, []byte(traitsJSON), 0o600), ShouldBeNil)

		Convey("When both files exist", func() {
			c, err := catalog.LoadFiles(context.Background(), champs, traits)

			Convey("Then the catalog should load", func() {
				So(err, ShouldBeNil)
				So(c.PoolSize(), ShouldEqual, 3)
			})
		})

		Convey("When the traits file is missing", func() {
			_, err := catalog.LoadFiles(context.Background(), champs, filepath.Join(dir, "nope.json"))

			Convey("Then a load error should be returned", func() {
				So(errors.Is(err, catalog.ErrLoad), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given champion and trait records", t, func() {
		traits := []catalog.Trait{{Key: 1, Name: "A", Min: 2}}

		Convey("When a champion key is duplicated", func() {
			_, err := catalog.New([]catalog.Champion{{Key: 1}, {Key: 1}}, traits)

			Convey("Then construction should fail", func() {
				So(errors.Is(err, catalog.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When a trait key is duplicated", func() {
			_, err := catalog.New([]catalog.Champion{{Key: 1}}, append(traits, catalog.Trait{Key: 1}))

			Convey("Then construction should fail", func() {
				So(errors.Is(err, catalog.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When the mode is not supported", func() {
			_, err := catalog.New([]catalog.Champion{{Key: 1}}, traits, catalog.WithMode("chaos"))

			Convey("Then construction should fail", func() {
				So(errors.Is(err, catalog.ErrUnknownMode), ShouldBeTrue)
			})
		})

		Convey("When the caller mutates its input after construction", func() {
			pool := []catalog.Champion{{Key: 1, Traits: []int{1}}}
			c, err := catalog.New(pool, traits)
			So(err, ShouldBeNil)
			pool[0].Traits[0] = 42

			Convey("Then the catalog should be unaffected", func() {
				So(c.Champion(1).Traits, ShouldResemble, []int{1})
			})
		})
	})
}

func TestParseMode(t *testing.T) {
	Convey("Given mode names", t, func() {
		cases := map[string]catalog.Mode{
			"":               catalog.ModeStandUnited,
			"standUnited":    catalog.ModeStandUnited,
			"STANDUNITED":    catalog.ModeStandUnited,
			"builtDifferent": catalog.ModeBuiltDifferent,
			" bd ":           catalog.ModeBuiltDifferent,
		}
		for name, want := range cases {
			Convey("When parsing "+name, func() {
				got, err := catalog.ParseMode(name)

				Convey("Then it should resolve to "+want.String(), func() {
					So(err, ShouldBeNil)
					So(got, ShouldEqual, want)
				})
			})
		}

		Convey("When parsing an unknown name", func() {
			_, err := catalog.ParseMode("hyperroll")

			Convey("Then it should fail", func() {
				So(errors.Is(err, catalog.ErrUnknownMode), ShouldBeTrue)
			})
		})
	})
}
