package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/nc-news/internal/apperror"
)

func TestListComments(t *testing.T) {
	svc, m := newCommentService(t)

	comments, err := svc.ListByArticle(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("ListByArticle() error = %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("got %d comments, want 2", len(comments))
	}
	if q := m.comments.lastQuery; q.SortBy != DefaultCommentSort || q.Order != DefaultCommentOrder {
		t.Errorf("query = %+v, want default sort", q)
	}
}

func TestListComments_ArticleWithoutComments(t *testing.T) {
	svc, _ := newCommentService(t)

	comments, err := svc.ListByArticle(context.Background(), 2, "votes", "asc")
	if err != nil {
		t.Fatalf("ListByArticle() error = %v", err)
	}
	if comments == nil || len(comments) != 0 {
		t.Errorf("comments = %#v, want empty non-nil slice", comments)
	}
}

func TestListComments_UnknownArticle(t *testing.T) {
	svc, _ := newCommentService(t)

	_, err := svc.ListByArticle(context.Background(), 29, "", "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListComments_BadSort(t *testing.T) {
	svc, _ := newCommentService(t)

	for _, tc := range [][2]string{{"title", "asc"}, {"votes", "up"}, {"VOTES", "asc"}, {"votes", "DESC"}} {
		_, err := svc.ListByArticle(context.Background(), 1, tc[0], tc[1])
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("sort %v: error = %v, want ErrValidation", tc, err)
			continue
		}
		if err.Error() != MsgBadCommentSort {
			t.Errorf("message = %q, want %q", err.Error(), MsgBadCommentSort)
		}
	}
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreateComment_Success(t *testing.T) {
	svc, m := newCommentService(t)

	comment, err := svc.Create(context.Background(), 2, "lurker", "first!")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if comment.CommentID != 3 {
		t.Errorf("CommentID = %d, want 3", comment.CommentID)
	}
	if comment.Author != "lurker" || comment.ArticleID != 2 || comment.Votes != 0 {
		t.Errorf("comment = %+v", comment)
	}
	if len(m.comments.comments) != 3 {
		t.Errorf("stored %d comments, want 3", len(m.comments.comments))
	}
}

func TestCreateComment_Validation(t *testing.T) {
	tests := []struct {
		name      string
		articleID int64
		username  string
		body      string
		wantErr   error
		wantMsg   string
	}{
		{name: "empty body", articleID: 1, username: "lurker", body: "  ", wantErr: apperror.ErrValidation},
		{name: "missing author", articleID: 1, username: "", body: "hi", wantErr: apperror.ErrValidation},
		{name: "unknown article", articleID: 29, username: "lurker", body: "hi", wantErr: apperror.ErrNotFound,
			wantMsg: "Article with ID '29' does not exist!"},
		{name: "unknown user", articleID: 1, username: "kennyomega", body: "hi", wantErr: apperror.ErrValidation,
			wantMsg: "User 'kennyomega' does not exist!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCommentService(t)

			_, err := svc.Create(context.Background(), tt.articleID, tt.username, tt.body)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
			if len(m.comments.comments) != 2 {
				t.Error("a rejected comment must not be stored")
			}
		})
	}
}

func TestCreateComment_UserLookupFailure(t *testing.T) {
	svc, m := newCommentService(t)
	m.users.err = errDatabaseDown

	_, err := svc.Create(context.Background(), 1, "lurker", "hi")
	if !errors.Is(err, errDatabaseDown) {
		t.Errorf("error = %v, want errDatabaseDown", err)
	}
}

// =========================================================================
// VOTE / DELETE TESTS
// =========================================================================

func TestIncrementCommentVotes(t *testing.T) {
	svc, _ := newCommentService(t)

	comment, err := svc.IncrementVotes(context.Background(), 1, -20)
	if err != nil {
		t.Fatalf("IncrementVotes() error = %v", err)
	}
	if comment.Votes != -4 {
		t.Errorf("Votes = %d, want -4", comment.Votes)
	}

	_, err = svc.IncrementVotes(context.Background(), 78, 1)
	if msg := appMessage(err); msg != "Comment with ID '78' does not exist!" {
		t.Errorf("error = %v, want comment 78 not found", err)
	}
}

func TestDeleteComment(t *testing.T) {
	svc, m := newCommentService(t)

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(m.comments.comments) != 1 {
		t.Errorf("%d comments left, want 1", len(m.comments.comments))
	}

	err := svc.Delete(context.Background(), 2)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
