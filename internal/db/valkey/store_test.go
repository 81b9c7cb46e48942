package valkey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/storefront/internal/db"
)

func newTestStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	return &Store{client: c}, c
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestPing_Success(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	err := s.Ping(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpPing {
		t.Fatalf("expected db.Error{Op: PING}, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "storefront:products")).
		Return(mock.Result(mock.RedisString(`[{"id":"1"}]`)))

	data, err := s.Get(context.Background(), "storefront:products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Get() = %q", data)
	}
}

func TestGet_NotFound(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "missing")).
		Return(mock.Result(mock.RedisNil()))

	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestGet_Error(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.ErrorResult(errors.New("connection reset")))

	_, err := s.Get(context.Background(), "k")
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpGet {
		t.Fatalf("expected db.Error{Op: GET}, got %v", err)
	}
}

func TestSet_Success(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "k", "v")).
		Return(mock.Result(mock.RedisString("OK")))

	if err := s.Set(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSet_Error(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "k", "v")).
		Return(mock.ErrorResult(errors.New("READONLY")))

	if err := s.Set(context.Background(), "k", []byte("v")); err == nil {
		t.Fatal("expected error")
	}
}

func TestSetNX(t *testing.T) {
	tests := []struct {
		name    string
		result  rueidis.RedisResult
		want    bool
		wantErr bool
	}{
		{"written", mock.Result(mock.RedisString("OK")), true, false},
		{"exists", mock.Result(mock.RedisNil()), false, false},
		{"error", mock.ErrorResult(errors.New("boom")), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newTestStore(t)
			c.EXPECT().
				Do(gomock.Any(), mock.Match("SET", "k", "v", "NX")).
				Return(tt.result)

			got, err := s.SetNX(context.Background(), "k", []byte("v"))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SetNX() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDel(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "k")).
		Return(mock.Result(mock.RedisInt64(1)))

	if err := s.Del(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Success(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	s, c := newTestStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(errors.New("refused"))).
		AnyTimes()

	if err := s.WaitForReady(context.Background(), 250*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}
