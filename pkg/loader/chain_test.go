package loader_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/loader"
)

func staticLoader(messages domaindb.Messages, err error, calls *int) domaindb.Loader {
	return domaindb.LoaderFunc(func(context.Context, string, string) (domaindb.Messages, error) {
		if calls != nil {
			*calls++
		}
		return messages, err
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first non-empty wins", func(t *testing.T) {
		t.Parallel()
		var second, third int
		chain := loader.Chain(
			staticLoader(nil, nil, nil),
			staticLoader(domaindb.Messages{"a": "1"}, nil, &second),
			staticLoader(domaindb.Messages{"a": "2"}, nil, &third),
		)

		messages, err := chain.Load(ctx, "en", "main")
		require.NoError(t, err)
		require.Equal(t, "1", messages["a"])
		require.Equal(t, 1, second)
		require.Zero(t, third)
	})

	t.Run("empty table falls through", func(t *testing.T) {
		t.Parallel()
		chain := loader.Chain(
			staticLoader(domaindb.Messages{}, nil, nil),
			staticLoader(domaindb.Messages{"a": "2"}, nil, nil),
		)

		messages, err := chain.Load(ctx, "en", "main")
		require.NoError(t, err)
		require.Equal(t, "2", messages["a"])
	})

	t.Run("error stops the chain", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		var calls int
		chain := loader.Chain(
			staticLoader(nil, boom, nil),
			staticLoader(domaindb.Messages{"a": "2"}, nil, &calls),
		)

		_, err := chain.Load(ctx, "en", "main")
		require.ErrorIs(t, err, boom)
		require.Zero(t, calls)
	})

	t.Run("nil loaders skipped", func(t *testing.T) {
		t.Parallel()
		chain := loader.Chain(nil, staticLoader(domaindb.Messages{"a": "1"}, nil, nil), nil)
		require.Len(t, chain, 1)
	})

	t.Run("all absent", func(t *testing.T) {
		t.Parallel()
		messages, err := loader.Chain().Load(ctx, "en", "main")
		require.NoError(t, err)
		require.Nil(t, messages)
	})
}
