package enumlabel

import (
	"encoding/json"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unregister removes the definition of T so tests leave the registry as they found it.
func unregister[T Integer]() {
	mu.Lock()
	defer mu.Unlock()

	delete(registry, reflect.TypeFor[T]())
}

func registerForTest[T Integer](t *testing.T, def *Definition[T]) {
	t.Helper()
	require.NoError(t, Register(def))
	t.Cleanup(unregister[T])
}

type region uint16

const (
	regionEurope region = iota + 1
	regionAsia
)

type selfLabelled int

func (s selfLabelled) EnumLabel() (string, error) {
	return "self", nil
}

func TestRegisterAndLookup(t *testing.T) {
	def := Enum[region]("Region", V("Europe", regionEurope, "europe"), V("Asia", regionAsia, "asia"))
	registerForTest(t, def)

	got, ok := Lookup[region]()
	require.True(t, ok)
	assert.Same(t, def, got)
	assert.Contains(t, Registered(), "Region")

	_, ok = Lookup[selfLabelled]()
	assert.False(t, ok)
}

func TestRegisterTwice(t *testing.T) {
	registerForTest(t, Enum[region]("Region"))

	err := Register(Enum[region]("Region"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Panics(t, func() { MustRegister(Enum[region]("Region")) })
}

func TestRegisterNil(t *testing.T) {
	assert.Error(t, Register[region](nil))
}

func TestPackageLevelLabelOf(t *testing.T) {
	registerForTest(t, statusDefinition())
	registerForTest(t, colorDefinition())

	got, err := LabelOf(statusActive)
	require.NoError(t, err)
	assert.Equal(t, "active", got)

	got, err = FlagsLabelOf(red|blue, '|')
	require.NoError(t, err)
	assert.Equal(t, "1|4", got)

	got, err = FlagsLabelOf(statusActive, ',')
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	assert.Equal(t, "deleted", MustLabelOf(statusDeleted))
	assert.Equal(t, "2,4", MustFlagsLabelOf(green|blue, ','))

	_, err = LabelOf(statusUnlabeled)
	assert.ErrorIs(t, err, ErrMissingLabel)
}

func TestPackageLevelUnregistered(t *testing.T) {
	_, err := LabelOf(region(7))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEnum)

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "7", argErr.Value)
	assert.Contains(t, argErr.Type, "region")

	_, err = FlagsLabelOf(region(7), ',')
	assert.ErrorIs(t, err, ErrUnknownEnum)

	assert.Panics(t, func() { MustLabelOf(region(7)) })
	assert.Panics(t, func() { MustFlagsLabelOf(region(7), ',') })
}

func TestConcurrentLookups(t *testing.T) {
	registerForTest(t, colorDefinition())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s, err := FlagsLabelOf(red|green|blue, ',')
				assert.NoError(t, err)
				assert.Equal(t, "1,2,4", s)
			}
		}()
	}
	wg.Wait()
}

func TestTextMarshal(t *testing.T) {
	registerForTest(t, statusDefinition())
	registerForTest(t, colorDefinition())

	payload := struct {
		Status status `json:"-"`
		Color  color  `json:"-"`

		StatusText Text[status] `json:"status"`
		ColorText  Text[color]  `json:"colors"`
		PipeText   Text[color]  `json:"pipe"`
	}{
		StatusText: Text[status]{Value: statusDeleted},
		ColorText:  Text[color]{Value: red | blue},
		PipeText:   Text[color]{Value: red | green, Delimiter: '|'},
	}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"deleted","colors":"1,4","pipe":"1|2"}`, string(b))

	_, err = Text[status]{Value: statusUnlabeled}.MarshalText()
	assert.ErrorIs(t, err, ErrMissingLabel)

	_, err = Text[region]{Value: regionAsia}.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownEnum)
}

func TestLabel(t *testing.T) {
	registerForTest(t, statusDefinition())

	got, err := Label(selfLabelled(3))
	require.NoError(t, err)
	assert.Equal(t, "self", got)

	got, err = Label(statusSuspended)
	require.NoError(t, err)
	assert.Equal(t, "SUSPENDED", got)

	_, err = Label(region(1))
	assert.ErrorIs(t, err, ErrUnknownEnum)
}
