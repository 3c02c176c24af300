package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:abc:pt-br").SetVal("Olá")

	val, ok := c.Get("abc:pt-br")
	if !ok {
		t.Error("Expected cache hit")
	}
	if val != "Olá" {
		t.Errorf("Expected 'Olá', got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:abc:pt-br").RedisNil()

	if val, ok := c.Get("abc:pt-br"); ok || val != "" {
		t.Errorf("Expected miss, got (%q, %v)", val, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_ErrorIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:k").SetErr(errors.New("connection refused"))

	if _, ok := c.Get("k"); ok {
		t.Error("Redis error should be treated as a miss")
	}
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 24*time.Hour, "test:")

	mock.ExpectSet("test:k", "v", 24*time.Hour).SetVal("OK")

	if err := c.Set("k", "v"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Set_NoTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "test:")

	mock.ExpectSet("test:k", "v", 0).SetVal("OK")

	if err := c.Set("k", "v"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Set_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "test:")

	mock.ExpectSet("test:k", "v", 0).SetErr(errors.New("READONLY"))

	if err := c.Set("k", "v"); err == nil {
		t.Error("Set should surface the Redis error")
	}
}

func TestRedisCache_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "test:")

	mock.ExpectDel("test:k").SetVal(1)

	if err := c.Delete("k"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_DefaultPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "")

	mock.ExpectGet("aztrans:k").SetVal("v")

	if val, ok := c.Get("k"); !ok || val != "v" {
		t.Errorf("Get with default prefix = (%q, %v)", val, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "test:")

	mock.ExpectPing().SetVal("PONG")

	if err := c.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	if _, err := NewRedisCache(RedisConfig{URL: "not-a-url"}); err == nil {
		t.Error("expected error for invalid Redis URL")
	}
}
