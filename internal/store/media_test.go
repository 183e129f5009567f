package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"lessonpress/internal/models"
)

func TestMediaStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)

	s3Key := "media/image/test/" + uuid.NewString()[:8] + ".jpg"
	thumb := s3Key + ".thumb.jpg"
	t.Cleanup(func() { cleanMediaByKey(t, db, s3Key) })

	created, err := s.Create(&models.Media{
		Kind:         models.MediaKindImage,
		Filename:     "test.jpg",
		OriginalName: "original.jpg",
		ContentType:  "image/jpeg",
		SizeBytes:    1024,
		Bucket:       "media",
		S3Key:        s3Key,
		ThumbS3Key:   &thumb,
		Width:        640,
		Height:       480,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.SizeBytes != 1024 {
		t.Errorf("size: got %d, want 1024", created.SizeBytes)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.S3Key != s3Key || found.Kind != models.MediaKindImage {
		t.Errorf("found = %+v", found)
	}
	if found.ThumbS3Key == nil || *found.ThumbS3Key != thumb {
		t.Errorf("thumb key = %v", found.ThumbS3Key)
	}
	if found.Width != 640 || found.Height != 480 {
		t.Errorf("dimensions = %dx%d", found.Width, found.Height)
	}

	items, err := s.List(50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) == 0 {
		t.Error("List returned no media")
	}
}

func TestMediaStoreFindMissing(t *testing.T) {
	s := NewMediaStore(testDB(t))
	if _, err := s.FindByID(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID: %v, want ErrNotFound", err)
	}
}
