package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifario/internal/app/commands"
	appoutbox "tarifario/internal/app/outbox"
)

type testCommand struct {
	invalid bool
}

func (c testCommand) Key() string { return "test.command" }

func (c testCommand) Validate() error {
	if c.invalid {
		return errors.New("test: invalid command")
	}
	return nil
}

type countingHandler struct {
	calls int
	err   error
}

func (h *countingHandler) Handle(ctx context.Context, cmd testCommand) (string, error) {
	h.calls++
	return "ok", h.err
}

type fakeOutbox struct {
	flushed int
}

func (f *fakeOutbox) Add(ctx context.Context, rec appoutbox.EventRecord) error { return nil }
func (f *fakeOutbox) Flush(ctx context.Context) error {
	f.flushed++
	return nil
}

func newBus(handler *countingHandler) *commands.InMemoryBus {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, testCommand{}.Key(), handler)
	return bus
}

func TestValidationRejectsBeforeDispatch(t *testing.T) {
	handler := &countingHandler{}
	bus := ChainCommands(newBus(handler), Validation())

	_, err := bus.Dispatch(context.Background(), testCommand{invalid: true})
	require.Error(t, err)
	assert.Zero(t, handler.calls)

	res, err := bus.Dispatch(context.Background(), testCommand{})
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.Equal(t, 1, handler.calls)
}

func TestOutboxFlushOnlyOnSuccess(t *testing.T) {
	handler := &countingHandler{}
	box := &fakeOutbox{}
	bus := ChainCommands(newBus(handler), OutboxFlush(box))

	_, err := bus.Dispatch(context.Background(), testCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, box.flushed)

	handler.err = errors.New("test: handler failed")
	_, err = bus.Dispatch(context.Background(), testCommand{})
	require.Error(t, err)
	assert.Equal(t, 1, box.flushed)
}

func TestChainCommandsOrder(t *testing.T) {
	handler := &countingHandler{}
	var order []string
	tag := func(name string) CommandMiddleware {
		return func(next commands.Bus) commands.Bus {
			nextFn := wrapCommand(next)
			return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
				order = append(order, name)
				return nextFn(ctx, cmd)
			})
		}
	}

	bus := ChainCommands(newBus(handler), tag("outer"), tag("inner"))
	_, err := bus.Dispatch(context.Background(), testCommand{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
