package sleap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexPathUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"string", `"/videos/a.mp4"`, []string{"/videos/a.mp4"}},
		{"empty string", `""`, nil},
		{"list", `["/a.tif", "/b.tif"]`, []string{"/a.tif", "/b.tif"}},
		{"list with junk elements", `["/a.tif", 7, null, ""]`, []string{"/a.tif"}},
		{"empty list", `[]`, nil},
		{"number", `42`, nil},
		{"null", `null`, nil},
		{"object", `{"path": "/a.tif"}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexPath
			require.NoError(t, json.Unmarshal([]byte(tc.in), &f))
			assert.Equal(t, tc.want, f.Values())
		})
	}
}

func TestFlexPathMarshal(t *testing.T) {
	out, err := json.Marshal(NewFlexPath("/a.tif"))
	require.NoError(t, err)
	assert.JSONEq(t, `"/a.tif"`, string(out))

	out, err = json.Marshal(NewFlexPath("/a.tif", "/b.tif"))
	require.NoError(t, err)
	assert.JSONEq(t, `["/a.tif", "/b.tif"]`, string(out))

	out, err = json.Marshal(FlexPath{})
	require.NoError(t, err)
	assert.JSONEq(t, `""`, string(out))
}

func TestFlexPathFirst(t *testing.T) {
	assert.Equal(t, "/a.tif", NewFlexPath("/a.tif", "/b.tif").First())
	assert.Empty(t, FlexPath{}.First())
	assert.True(t, FlexPath{}.IsEmpty())
	assert.False(t, NewFlexPath("x").IsEmpty())
}
