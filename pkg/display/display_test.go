package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Host    string `display:"Host Name"`
	Port    int
	Secret  string `display:"-"`
	private string
}

func TestName(t *testing.T) {
	got, err := Name(sample{}, "Host")
	require.NoError(t, err)
	assert.Equal(t, "Host Name", got)

	got, err = Name(&sample{}, "Port")
	require.NoError(t, err)
	assert.Equal(t, "Port", got, "untagged fields use their Go name")

	got, err = Name((*sample)(nil), "Host")
	require.NoError(t, err)
	assert.Equal(t, "Host Name", got)

	_, err = Name(sample{}, "Missing")
	assert.Error(t, err)

	_, err = Name(sample{}, "private")
	assert.Error(t, err)

	_, err = Name(42, "Host")
	assert.ErrorIs(t, err, ErrNotStruct)

	_, err = Name(nil, "Host")
	assert.ErrorIs(t, err, ErrNotStruct)
}

func TestFields(t *testing.T) {
	model := sample{Host: "web01", Port: 8080, Secret: "s", private: "p"}

	fields, err := Fields(&model)
	require.NoError(t, err)
	assert.Equal(t, []Field{
		{Name: "Host", Label: "Host Name", Value: "web01"},
		{Name: "Port", Label: "Port", Value: 8080},
	}, fields)

	fields, err = Fields((*sample)(nil))
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Nil(t, fields[0].Value)

	_, err = Fields("text")
	assert.ErrorIs(t, err, ErrNotStruct)
}
