package env

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceId(t *testing.T) {
	os.Unsetenv("PODNAME")
	id := InstanceId()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, InstanceId())

	os.Setenv("PODNAME", "api-0")
	defer os.Unsetenv("PODNAME")
	assert.Equal(t, "api-0", InstanceId())
}
