package domaindb_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

func TestDB_Domain(t *testing.T) {
	t.Parallel()

	t.Run("registers needed domain", func(t *testing.T) {
		t.Parallel()

		db, err := domaindb.New()
		require.NoError(t, err)

		d := db.Domain("a")
		require.Equal(t, "a", d.ID())
		db.Domain("b")
		db.Domain("a")
		require.Equal(t, []string{"a", "b"}, db.NeededDomains())
	})

	t.Run("formats defaults without loader", func(t *testing.T) {
		t.Parallel()

		db, err := domaindb.New(domaindb.WithDefaults("a", domaindb.Messages{"foo": "bar"}))
		require.NoError(t, err)

		format := db.Domain("a")
		_, err = db.SetLocale(context.Background(), "en-US")
		require.NoError(t, err)

		require.Equal(t, "bar", format.T("en-US", "foo"))
	})

	t.Run("formats loaded messages per locale", func(t *testing.T) {
		t.Parallel()

		locales := map[string]map[string]domaindb.Messages{
			"en-US": {"a": {"hello": "Hello world!"}},
			"nl-NL": {"a": {"hello": "Hallo wereld!"}},
		}
		db, err := domaindb.New(domaindb.WithLoaderFunc(func(_ context.Context, locale, domain string) (domaindb.Messages, error) {
			return locales[locale][domain], nil
		}))
		require.NoError(t, err)

		format := db.Domain("a")
		ctx := context.Background()

		_, err = db.SetLocale(ctx, "en-US")
		require.NoError(t, err)
		require.Equal(t, "Hello world!", format.T("en-US", "hello"))

		db.ClearMessages()
		l, err := db.SetLocale(ctx, "nl-NL")
		require.NoError(t, err)
		require.Equal(t, "Hallo wereld!", l.Translator("a").T("hello"))
	})

	t.Run("substitutes placeholders", func(t *testing.T) {
		t.Parallel()

		db, err := domaindb.New(domaindb.WithDefaults("a", domaindb.Messages{
			"greeting": "Hello, {{name}}! You have {{count}} messages.",
		}))
		require.NoError(t, err)

		d := db.Domain("a")
		s, err := d.Format("en", "greeting", domaindb.M{"name": "Ada", "count": 3})
		require.NoError(t, err)
		require.Equal(t, "Hello, Ada! You have 3 messages.", s)

		require.Equal(t, "Hello, Ada! You have 5 messages.",
			d.T("en", "greeting", domaindb.M{"name": "Ada", "count": 1}, domaindb.M{"count": 5}))
	})

	t.Run("missing path returns path and calls handler", func(t *testing.T) {
		t.Parallel()

		var (
			mu     sync.Mutex
			missed []string
		)
		db, err := domaindb.New(domaindb.WithMissingKeyHandler(func(locale, domain, path string) {
			mu.Lock()
			defer mu.Unlock()
			missed = append(missed, locale+"/"+domain+"/"+path)
		}))
		require.NoError(t, err)

		d := db.Domain("a")
		require.Equal(t, "nope.key", d.T("en", "nope.key"))

		_, err = d.Format("en", "nope.key", nil)
		require.ErrorIs(t, err, domaindb.ErrMessageNotFound)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"en/a/nope.key"}, missed)
	})
}

func TestLocalizer(t *testing.T) {
	t.Parallel()

	db, err := domaindb.New(domaindb.WithDefaults("main", domaindb.Messages{
		"title": "Welcome",
		"nav":   domaindb.Messages{"home": "Home"},
	}))
	require.NoError(t, err)

	l := db.Localizer("en")
	require.Equal(t, "en", l.Locale())

	messages, ok := l.Messages("main")
	require.True(t, ok)
	require.Equal(t, "Welcome", messages["title"])

	tr := l.Translator("main")
	require.Equal(t, "en", tr.Locale())
	require.Equal(t, "main", tr.Domain())
	require.Equal(t, "Home", tr.T("nav.home"))
	require.Contains(t, db.NeededDomains(), "main")

	_, err = tr.Format("nav", nil)
	require.ErrorIs(t, err, domaindb.ErrNotTemplate)

	t.Run("context round trip", func(t *testing.T) {
		t.Parallel()

		ctx := domaindb.ToContext(context.Background(), l)
		require.Same(t, l, domaindb.FromContext(ctx))
		require.Nil(t, domaindb.FromContext(context.Background()))
	})

	t.Run("NewTranslator", func(t *testing.T) {
		t.Parallel()

		tr := domaindb.NewTranslator(db.Domain("main"), "en")
		require.Equal(t, "Welcome", tr.T("title"))
		require.Panics(t, func() { domaindb.NewTranslator(nil, "en") })
	})
}
