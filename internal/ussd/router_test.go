package ussd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reply(msg string) HandlerFunc {
	return func(context.Context, *Request) (*Response, error) {
		return Continue(msg), nil
	}
}

func TestRouterDispatch(t *testing.T) {
	router := NewRouter().
		MatchFunc(OnInitial(), reply("main menu")).
		MatchFunc(OnExact("2*1"), reply("your phone")).
		MatchFunc(OnPrefix("2"), reply("account menu")).
		MatchFunc(OnPrefix("1"), reply("transfer"))

	tests := []struct {
		name string
		text string
		want string
	}{
		{"initial goes to the menu", "", "CON main menu"},
		{"exact wins over the later prefix", "2*1", "CON your phone"},
		{"prefix claims the subtree", "2*9", "CON account menu"},
		{"deep transfer path", "1*2*500", "CON transfer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := router.Handle(context.Background(), &Request{Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Render())
		})
	}
}

func TestRouterFirstMatchWins(t *testing.T) {
	router := NewRouter().
		MatchFunc(OnPrefix("1"), reply("first")).
		MatchFunc(OnExact("1"), reply("second"))

	res, err := router.Handle(context.Background(), &Request{Text: "1"})
	require.NoError(t, err)
	assert.Equal(t, "CON first", res.Render())
}

func TestRouterDefaultFallback(t *testing.T) {
	router := NewRouter().
		MatchFunc(OnInitial(), reply("main menu"))

	res, err := router.Handle(context.Background(), &Request{Text: "7"})
	require.NoError(t, err)
	assert.True(t, res.IsEnding())
	assert.Equal(t, "END "+DefaultInvalidOption, res.Render())
}

func TestRouterCustomFallback(t *testing.T) {
	router := NewRouter().Fallback(HandlerFunc(func(context.Context, *Request) (*Response, error) {
		return End("custom miss"), nil
	}))

	res, err := router.Handle(context.Background(), &Request{Text: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "END custom miss", res.Render())
}

func TestRouterPropagatesHandlerError(t *testing.T) {
	boom := errors.New("downstream broke")
	router := NewRouter().
		MatchFunc(OnExact("1"), func(context.Context, *Request) (*Response, error) {
			return nil, boom
		})

	_, err := router.Handle(context.Background(), &Request{Text: "1"})
	require.ErrorIs(t, err, boom)
}

func TestRoutersNest(t *testing.T) {
	inner := NewRouter().
		MatchFunc(OnExact("2*1"), reply("nested"))

	outer := NewRouter().
		Match(OnPrefix("2"), inner)

	res, err := outer.Handle(context.Background(), &Request{Text: "2*1"})
	require.NoError(t, err)
	assert.Equal(t, "CON nested", res.Render())
}
