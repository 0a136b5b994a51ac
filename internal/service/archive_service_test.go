package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeObjectStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestArchiveService_ArchivesTerminalPost(t *testing.T) {
	store := &fakeObjectStore{}
	a := NewArchiveService(store, "audit")

	post := &models.Post{ID: "p1", Content: "hello", Status: models.PostStatusRejected, RejectionReason: "off-brand"}
	require.NoError(t, a.Archive(context.Background(), post))

	require.Len(t, store.inputs, 1)
	assert.Equal(t, "audit", aws.ToString(store.inputs[0].Bucket))
	assert.Equal(t, "posts/rejected/p1.json", aws.ToString(store.inputs[0].Key))
	assert.Equal(t, "application/json", aws.ToString(store.inputs[0].ContentType))

	var got models.Post
	require.NoError(t, json.Unmarshal(store.bodies[0], &got))
	assert.Equal(t, "off-brand", got.RejectionReason)
}

func TestArchiveService_SkipsLivePosts(t *testing.T) {
	store := &fakeObjectStore{}
	a := NewArchiveService(store, "audit")

	err := a.Archive(context.Background(), &models.Post{ID: "p1", Status: models.PostStatusApproved})
	assert.Error(t, err)
	assert.Empty(t, store.inputs)
}

func TestArchiveService_StoreError(t *testing.T) {
	store := &fakeObjectStore{err: errors.New("bucket missing")}
	a := NewArchiveService(store, "audit")

	err := a.Archive(context.Background(), &models.Post{ID: "p1", Status: models.PostStatusPosted})
	assert.EqualError(t, err, "bucket missing")
}
