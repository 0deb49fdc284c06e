package service

import (
	"testing"

	"learnify-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAllLecturesViewed(t *testing.T) {
	l1 := primitive.NewObjectID()
	l2 := primitive.NewObjectID()
	l3 := primitive.NewObjectID()

	testCases := []struct {
		name     string
		lectures []primitive.ObjectID
		progress []models.LectureProgress
		want     bool
	}{
		{
			"all viewed",
			[]primitive.ObjectID{l1, l2},
			[]models.LectureProgress{{LectureID: l1, Viewed: true}, {LectureID: l2, Viewed: true}},
			true,
		},
		{
			"one not viewed",
			[]primitive.ObjectID{l1, l2},
			[]models.LectureProgress{{LectureID: l1, Viewed: true}, {LectureID: l2, Viewed: false}},
			false,
		},
		{
			"missing progress entry",
			[]primitive.ObjectID{l1, l2, l3},
			[]models.LectureProgress{{LectureID: l1, Viewed: true}, {LectureID: l2, Viewed: true}},
			false,
		},
		{
			"extra progress entries are ignored",
			[]primitive.ObjectID{l1},
			[]models.LectureProgress{{LectureID: l1, Viewed: true}, {LectureID: l3, Viewed: false}},
			true,
		},
		{
			"course with no lectures is never completed",
			nil,
			nil,
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := allLecturesViewed(tc.lectures, tc.progress); got != tc.want {
				t.Errorf("allLecturesViewed() = %v, want %v", got, tc.want)
			}
		})
	}
}
