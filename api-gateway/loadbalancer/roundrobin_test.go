package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinRotates(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080"})

	assert.Equal(t, "http://a:8080", rr.Next())
	assert.Equal(t, "http://b:8080", rr.Next())
	assert.Equal(t, "http://a:8080", rr.Next())
}

func TestRoundRobinEmpty(t *testing.T) {
	rr := NewRoundRobin(nil)
	assert.Equal(t, "", rr.Next())
}

func TestRoundRobinServersCopy(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})

	servers := rr.Servers()
	servers[0] = "mutated"

	assert.Equal(t, "http://a:8080", rr.Next())
}
