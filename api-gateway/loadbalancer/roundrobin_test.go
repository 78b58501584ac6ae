package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinCycles(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a", "http://b", "http://c"})

	assert.Equal(t, "http://a", rr.Next())
	assert.Equal(t, "http://b", rr.Next())
	assert.Equal(t, "http://c", rr.Next())
	assert.Equal(t, "http://a", rr.Next())
}

func TestRoundRobinEmpty(t *testing.T) {
	rr := NewRoundRobin(nil)
	assert.Equal(t, "", rr.Next())
}

func TestRoundRobinServersCopy(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a"})
	servers := rr.Servers()
	servers[0] = "mutated"
	assert.Equal(t, "http://a", rr.Next())
}
