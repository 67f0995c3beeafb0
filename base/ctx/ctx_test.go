package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	c := WithValue(bg, "farmId", "0x1")
	ts.Equal("0x1", Value(c, "farmId"))
	ts.Nil(Value(bg, "farmId"))
}

func (ts *testsuite) TestWithValues() {
	c := WithValues(Background(), map[string]interface{}{
		"wallet":  "0xa",
		"account": "0xb",
	})
	ts.Equal("0xa", Value(c, "wallet"))
	ts.Equal("0xb", Value(c, "account"))
}

func (ts *testsuite) TestFrom() {
	plain, cancel := context.WithCancel(context.Background())
	c := From(plain)
	cancel()
	<-c.Done()
	ts.Equal(context.Canceled, c.Err())

	wrapped := WithValue(Background(), "k", "v")
	ts.Equal("v", Value(From(wrapped), "k"))
}

func (ts *testsuite) TestWithCancel() {
	c, cancel := WithCancel(Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		ts.Fail("context not cancelled")
	}
}

func (ts *testsuite) TestTimeout() {
	c, cancel := WithTimeout(Background(), 10*time.Millisecond)
	defer cancel()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		ts.Fail("context not timed out")
	}
	ts.Equal(context.DeadlineExceeded, c.Err())
}
