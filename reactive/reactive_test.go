package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCore(t *testing.T) {
	/*
	   a  b
	   | /
	   c
	*/
	t.Run("two signals into a memo", func(t *testing.T) {
		rt := &Runtime{}

		a, setA := Signal(rt, 7)
		b, setB := Signal(rt, 1)
		callCount := 0

		c, err := Memo(rt, func(prev int) (int, error) {
			callCount++
			return a() * b(), nil
		}, 0)
		assert.Nil(t, err)

		assert.Equal(t, 7, c())
		assert.Equal(t, 1, callCount)

		setA(2)
		assert.Equal(t, 2, c())

		setB(3)
		assert.Equal(t, 6, c())

		assert.Equal(t, 3, callCount)
		c()
		assert.Equal(t, 3, callCount)
	})

	/*
	   a  b
	   | /
	   c
	   |
	   d
	*/
	t.Run("dependent memos update glitch free", func(t *testing.T) {
		rt := &Runtime{}
		a, setA := Signal(rt, 7)
		b, _ := Signal(rt, 1)

		callCount1 := 0
		c, err := Memo(rt, func(prev int) (int, error) {
			callCount1++
			return a() * b(), nil
		}, 0)
		assert.Nil(t, err)

		callCount2 := 0
		d, err := Memo(rt, func(prev int) (int, error) {
			callCount2++
			return c() + 1, nil
		}, 0)
		assert.Nil(t, err)

		assert.Equal(t, 8, d())
		assert.Equal(t, 1, callCount1)
		assert.Equal(t, 1, callCount2)
		setA(3)
		assert.Equal(t, 4, d())
		assert.Equal(t, 2, callCount1)
		assert.Equal(t, 2, callCount2)
	})

	/*
		a
		|
		c
	*/
	t.Run("equality check short circuits", func(t *testing.T) {
		callCount := 0
		rt := &Runtime{}
		a, setA := Signal(rt, 7)
		c, err := Memo(rt, func(prev int) (int, error) {
			callCount++
			return a() + 10, nil
		}, 0)
		assert.Nil(t, err)

		c()
		c()
		assert.Equal(t, 1, callCount)
		setA(7)
		assert.Equal(t, 1, callCount) // unchanged, equality check
	})

	/*
	   a   b
	    \ / (b only while a == 0)
	     e
	*/
	t.Run("effect dependencies are dynamic", func(t *testing.T) {
		rt := &Runtime{}
		a, setA := Signal(rt, 1)
		b, setB := Signal(rt, 10)

		callCount := 0
		err := Effect(rt, func(prev int) (int, error) {
			callCount++
			if a() == 0 {
				return b(), nil
			}
			return a(), nil
		}, 0)
		assert.Nil(t, err)
		assert.Equal(t, 1, callCount)

		// b was not read, writing it must not re-run the effect
		setB(20)
		assert.Equal(t, 1, callCount)

		setA(0)
		assert.Equal(t, 2, callCount)

		// now b is a dependency
		setB(30)
		assert.Equal(t, 3, callCount)
	})
}

func TestEffect(t *testing.T) {
	t.Run("first run is synchronous", func(t *testing.T) {
		rt := &Runtime{}
		a, _ := Signal(rt, 4)

		out := []int{}
		err := Effect(rt, func(prev int) (int, error) {
			out = append(out, a())
			return 0, nil
		}, 0)
		assert.Nil(t, err)
		assert.Equal(t, []int{4}, out)
	})

	t.Run("re-runs synchronously on write", func(t *testing.T) {
		rt := &Runtime{}
		a, setA := Signal(rt, 1)

		out := []int{}
		err := Effect(rt, func(prev int) (int, error) {
			out = append(out, a())
			return 0, nil
		}, 0)
		assert.Nil(t, err)

		setA(2)
		setA(3)
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("threads its previous return value", func(t *testing.T) {
		rt := &Runtime{}
		a, setA := Signal(rt, 1)

		prevs := []int{}
		err := Effect(rt, func(prev int) (int, error) {
			prevs = append(prevs, prev)
			return prev + a(), nil
		}, 100)
		assert.Nil(t, err)

		setA(2)
		setA(3)
		assert.Equal(t, []int{100, 101, 103}, prevs)
	})

	t.Run("stops after owning root disposes", func(t *testing.T) {
		rt := &Runtime{}
		a, setA := Signal(rt, 1)

		callCount := 0
		cleanedUp := false
		_, err := CreateRoot(rt, func(dispose func()) (any, error) {
			err := Effect(rt, func(prev int) (int, error) {
				callCount++
				return a(), nil
			}, 0)
			assert.Nil(t, err)
			OnCleanup(rt, func() {
				cleanedUp = true
			})

			setA(2)
			assert.Equal(t, 2, callCount)

			dispose()
			return nil, nil
		})
		assert.Nil(t, err)

		assert.True(t, cleanedUp)
		setA(3)
		assert.Equal(t, 2, callCount)
	})
}

func TestBatch(t *testing.T) {
	rt := &Runtime{}
	a, setA := Signal(rt, 1)
	b, setB := Signal(rt, 2)

	callCount := 0
	last := 0
	err := Effect(rt, func(prev int) (int, error) {
		callCount++
		last = a() + b()
		return last, nil
	}, 0)
	assert.Nil(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 3, last)

	_, err = Batch(rt, func() (any, error) {
		setA(10)
		setB(20)
		// while batching getters still see the old values
		assert.Equal(t, 1, a())
		assert.Equal(t, 2, b())
		return nil, nil
	})
	assert.Nil(t, err)

	// both writes landed, the effect ran once for the pair
	assert.Equal(t, 2, callCount)
	assert.Equal(t, 30, last)
}

func TestUntrack(t *testing.T) {
	rt := &Runtime{}
	a, setA := Signal(rt, 1)
	b, setB := Signal(rt, 2)

	callCount := 0
	err := Effect(rt, func(prev int) (int, error) {
		callCount++
		av := a()
		bv, err := Untrack(rt, func() (int, error) {
			return b(), nil
		})
		return av + bv, err
	}, 0)
	assert.Nil(t, err)
	assert.Equal(t, 1, callCount)

	setB(20)
	assert.Equal(t, 1, callCount)

	setA(10)
	assert.Equal(t, 2, callCount)
}

func TestContext(t *testing.T) {
	rt := &Runtime{}
	ctx := CreateContext(rt, "default")

	assert.Equal(t, "default", ctx.Read())

	got := ""
	_, err := CreateRoot(rt, func(dispose func()) (any, error) {
		defer dispose()
		ctx.Write("from root")

		return nil, Effect(rt, func(prev int) (int, error) {
			got = UseContext(ctx)
			return 0, nil
		}, 0)
	})
	assert.Nil(t, err)
	assert.Equal(t, "from root", got)

	assert.Equal(t, "default", ctx.Read())
}

func TestOnError(t *testing.T) {
	boom := errors.New("boom")

	t.Run("first run error bubbles to the registrar", func(t *testing.T) {
		rt := &Runtime{}
		err := Effect(rt, func(prev int) (int, error) {
			return 0, boom
		}, 0)
		assert.Equal(t, boom, err)
	})

	t.Run("handler on an ancestor owner catches", func(t *testing.T) {
		rt := &Runtime{}
		a, setA := Signal(rt, 1)

		var caught error
		_, err := CreateRoot(rt, func(dispose func()) (any, error) {
			OnError(rt, func(err error) {
				caught = err
			})

			return nil, Effect(rt, func(prev int) (int, error) {
				if a() > 1 {
					return 0, boom
				}
				return a(), nil
			}, 0)
		})
		assert.Nil(t, err)
		assert.Nil(t, caught)

		setA(2)
		assert.Equal(t, boom, caught)
	})
}

func TestMicrotasks(t *testing.T) {
	t.Run("drained in order, including tasks queued mid-drain", func(t *testing.T) {
		rt := &Runtime{}
		out := []int{}

		rt.Microtask(func() error {
			out = append(out, 1)
			rt.Microtask(func() error {
				out = append(out, 3)
				return nil
			})
			return nil
		})
		rt.Microtask(func() error {
			out = append(out, 2)
			return nil
		})

		assert.Empty(t, out)
		assert.Nil(t, rt.Flush())
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("error aborts the drain", func(t *testing.T) {
		rt := &Runtime{}
		boom := errors.New("boom")
		ran := false

		rt.Microtask(func() error {
			return boom
		})
		rt.Microtask(func() error {
			ran = true
			return nil
		})

		assert.Equal(t, boom, rt.Flush())
		assert.False(t, ran)

		// the rest stays queued for the next drain
		assert.Nil(t, rt.Flush())
		assert.True(t, ran)
	})
}
