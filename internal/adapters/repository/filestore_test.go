package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/synergy/internal/adapters/repository"
	"github.com/okian/synergy/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	suTraits    = `{"1": {"name": "Brawler", "min": 2}, "2": {"name": "Mage", "min": 2}}`
	suChampions = `{
		"1": {"id": "Vi", "tier": 1, "traits": [1]},
		"2": {"id": "Lux", "tier": 3, "traits": [2]},
		"3": {"id": "Sett", "tier": 4, "traits": [1, 2]}
	}`
	bdTraits    = `{"7": {"name": "Loner", "min": 1}}`
	bdChampions = `{"1": {"id": "Yuumi", "tier": 2, "traits": [7]}}`
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestFileStore(t *testing.T) {
	Convey("Given a catalog directory with both modes", t, func() {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"champions.json":    suChampions,
			"traits.json":       suTraits,
			"champions_bd.json": bdChampions,
			"traits_bd.json":    bdTraits,
		})
		store := repository.NewFileStore(repository.WithDir(dir))
		ctx := context.Background()

		Convey("When loading the standUnited catalog", func() {
			c, err := store.Catalog(ctx, catalog.ModeStandUnited, catalog.WithWeightTiers(true))

			Convey("Then it should read the default files and keep the options", func() {
				So(err, ShouldBeNil)
				So(c.PoolSize(), ShouldEqual, 3)
				So(c.Mode(), ShouldEqual, catalog.ModeStandUnited)
				So(c.WeightTiers(), ShouldBeTrue)
			})
		})

		Convey("When loading the builtDifferent catalog", func() {
			c, err := store.Catalog(ctx, catalog.ModeBuiltDifferent)

			Convey("Then it should read the _bd files", func() {
				So(err, ShouldBeNil)
				So(c.PoolSize(), ShouldEqual, 1)
				So(c.Champion(1).Name, ShouldEqual, "Yuumi")
				So(c.Mode(), ShouldEqual, catalog.ModeBuiltDifferent)
			})
		})

		Convey("When a caller passes a conflicting mode option", func() {
			c, err := store.Catalog(ctx, catalog.ModeStandUnited, catalog.WithMode(catalog.ModeBuiltDifferent))

			Convey("Then the requested mode should win", func() {
				So(err, ShouldBeNil)
				So(c.Mode(), ShouldEqual, catalog.ModeStandUnited)
			})
		})

		Convey("When listing traits", func() {
			traits, err := store.Traits(ctx, catalog.ModeStandUnited)

			Convey("Then they should come back ordered by key", func() {
				So(err, ShouldBeNil)
				So(traits, ShouldHaveLength, 2)
				So(traits[0].Name, ShouldEqual, "Brawler")
				So(traits[1].Min, ShouldEqual, 2)
			})
		})

		Convey("When the mode is unknown", func() {
			_, err := store.Catalog(ctx, catalog.Mode("chaos"))

			Convey("Then ErrUnknownMode should be returned", func() {
				So(errors.Is(err, catalog.ErrUnknownMode), ShouldBeTrue)
			})
		})

		Convey("When a file is malformed", func() {
			writeFiles(t, dir, map[string]string{"traits.json": `[1, 2]`})
			_, err := store.Catalog(ctx, catalog.ModeStandUnited)

			Convey("Then the error should carry both the store and catalog kinds", func() {
				So(errors.Is(err, repository.ErrCatalogUnavailable), ShouldBeTrue)
				So(errors.Is(err, catalog.ErrMalformed), ShouldBeTrue)
			})
		})
	})

	Convey("Given a store with custom file names", t, func() {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"set9.json":        suChampions,
			"set9_traits.json": suTraits,
		})
		store := repository.NewFileStore(
			repository.WithDir(dir),
			repository.WithFiles(catalog.ModeStandUnited, "set9.json", "set9_traits.json"),
		)

		Convey("Then the configured files should be read", func() {
			c, err := store.Catalog(context.Background(), catalog.ModeStandUnited)
			So(err, ShouldBeNil)
			So(c.PoolSize(), ShouldEqual, 3)
		})

		Convey("Then missing builtDifferent files should fail with ErrLoad", func() {
			_, err := store.Catalog(context.Background(), catalog.ModeBuiltDifferent)
			So(errors.Is(err, repository.ErrCatalogUnavailable), ShouldBeTrue)
			So(errors.Is(err, catalog.ErrLoad), ShouldBeTrue)
		})
	})
}
