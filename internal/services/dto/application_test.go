package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedSkills(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"repeated fields", []string{"Go", " SQL "}, []string{"Go", "SQL"}},
		{"comma separated", []string{"AutoCAD, Caesar II,,"}, []string{"AutoCAD", "Caesar II"}},
		{"json array", []string{`["Welding", " NDT "]`}, []string{"Welding", "NDT"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ApplicationRequest{Skills: tt.in}
			assert.Equal(t, tt.want, req.NormalizedSkills())
		})
	}
}

func TestBlogListQuery_FeaturedFilter(t *testing.T) {
	assert.Nil(t, BlogListQuery{}.FeaturedFilter())
	assert.Nil(t, BlogListQuery{Featured: "maybe"}.FeaturedFilter())

	v := BlogListQuery{Featured: "true"}.FeaturedFilter()
	if assert.NotNil(t, v) {
		assert.True(t, *v)
	}
}
