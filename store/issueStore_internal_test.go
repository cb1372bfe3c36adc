package store

import (
	"testing"

	"civicsync/models"

	"github.com/stretchr/testify/assert"
)

func TestNotify_DropsOlderVersions(t *testing.T) {
	var got []int
	s := &IssueStore{onChange: func(issues []models.Issue) {
		got = append(got, len(issues))
	}}

	s.notify(2, make([]models.Issue, 10))
	s.notify(1, make([]models.Issue, 9))
	s.notify(2, make([]models.Issue, 10))
	s.notify(3, make([]models.Issue, 11))

	assert.Equal(t, []int{10, 11}, got)
}
