package domaindb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

func TestDB_Messages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := domaindb.New(
		domaindb.WithLoaderFunc(func(_ context.Context, locale, _ string) (domaindb.Messages, error) {
			return domaindb.Messages{"hello": "hello " + locale}, nil
		}),
		domaindb.WithDefaults("a", domaindb.Messages{"hello": "default"}),
	)
	require.NoError(t, err)

	t.Run("returns defaults before load", func(t *testing.T) {
		messages, ok := db.Messages("nl", "a")
		require.True(t, ok)
		require.Equal(t, domaindb.Messages{"hello": "default"}, messages)
	})

	t.Run("absent without defaults", func(t *testing.T) {
		_, ok := db.Messages("nl", "unknown")
		require.False(t, ok)
	})

	t.Run("returns loaded table", func(t *testing.T) {
		_, err := db.LoadMessages(ctx, "en", "a")
		require.NoError(t, err)

		messages, ok := db.Messages("en", "a")
		require.True(t, ok)
		require.Equal(t, domaindb.Messages{"hello": "hello en"}, messages)
	})
}

func TestDB_MessageByID(t *testing.T) {
	t.Parallel()

	db, err := domaindb.New(domaindb.WithDefaults("a", domaindb.Messages{
		"x": domaindb.Messages{"y": "Z"},
		"plain": map[string]string{
			"key": "value",
		},
		"top": "TOP",
	}))
	require.NoError(t, err)

	tests := []struct {
		name    string
		domain  string
		path    string
		want    any
		wantErr error
	}{
		{name: "nested leaf", domain: "a", path: "x.y", want: "Z"},
		{name: "top level leaf", domain: "a", path: "top", want: "TOP"},
		{name: "string map leaf", domain: "a", path: "plain.key", want: "value"},
		{name: "subtree", domain: "a", path: "x", want: domaindb.Messages{"y": "Z"}},
		{name: "missing intermediate", domain: "a", path: "missing.y", wantErr: domaindb.ErrMessageNotFound},
		{name: "missing leaf", domain: "a", path: "x.missing", wantErr: domaindb.ErrMessageNotFound},
		{name: "path through template", domain: "a", path: "top.deeper", wantErr: domaindb.ErrMessageNotFound},
		{name: "empty path", domain: "a", path: "", wantErr: domaindb.ErrMessageNotFound},
		{name: "unknown domain", domain: "b", path: "x.y", wantErr: domaindb.ErrMessageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := db.MessageByID("en", tt.domain, tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("error names the path", func(t *testing.T) {
		t.Parallel()

		_, err := db.MessageByID("en", "a", "x.nope")
		require.EqualError(t, err, "domaindb: could not find message: x.nope")
	})
}

func TestDB_Template(t *testing.T) {
	t.Parallel()

	db, err := domaindb.New(domaindb.WithDefaults("a", domaindb.Messages{
		"x": domaindb.Messages{"y": "Z"},
	}))
	require.NoError(t, err)

	s, err := db.Template("en", "a", "x.y")
	require.NoError(t, err)
	require.Equal(t, "Z", s)

	_, err = db.Template("en", "a", "x")
	require.ErrorIs(t, err, domaindb.ErrNotTemplate)

	_, err = db.Template("en", "a", "x.z")
	require.ErrorIs(t, err, domaindb.ErrMessageNotFound)
}

func TestDB_IsLoaded(t *testing.T) {
	t.Parallel()

	db, err := domaindb.New(
		domaindb.WithLoaderFunc(func(context.Context, string, string) (domaindb.Messages, error) {
			return domaindb.Messages{"hello": "Hello"}, nil
		}),
		domaindb.WithDefaults("a", domaindb.Messages{"hello": "default"}),
	)
	require.NoError(t, err)

	require.False(t, db.IsLoaded("en", "a"))

	_, err = db.LoadMessages(context.Background(), "en", "a")
	require.NoError(t, err)
	require.True(t, db.IsLoaded("en", "a"))
	require.False(t, db.IsLoaded("nl", "a"))

	db.ClearMessages()
	require.False(t, db.IsLoaded("en", "a"))
}

func TestDB_Ready(t *testing.T) {
	t.Parallel()

	t.Run("defaults without loader", func(t *testing.T) {
		t.Parallel()
		db, err := domaindb.New(domaindb.WithDefaults("a", domaindb.Messages{"hello": "default"}))
		require.NoError(t, err)

		require.True(t, db.Ready("en", "a"))
		require.False(t, db.Ready("en", "b"))
		require.False(t, db.IsLoaded("en", "a"))
	})

	t.Run("strict without loader", func(t *testing.T) {
		t.Parallel()
		db, err := domaindb.New(
			domaindb.WithDefaults("a", domaindb.Messages{"hello": "default"}),
			domaindb.WithStrictLoader(),
		)
		require.NoError(t, err)
		require.False(t, db.Ready("en", "a"))
	})

	t.Run("loader requires a load", func(t *testing.T) {
		t.Parallel()
		db, err := domaindb.New(
			domaindb.WithLoaderFunc(func(context.Context, string, string) (domaindb.Messages, error) {
				return nil, nil
			}),
			domaindb.WithDefaults("a", domaindb.Messages{"hello": "default"}),
		)
		require.NoError(t, err)

		require.False(t, db.Ready("en", "a"))
		_, err = db.LoadMessages(context.Background(), "en", "a")
		require.NoError(t, err)
		require.True(t, db.Ready("en", "a"))
	})
}
