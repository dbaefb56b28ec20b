package database

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"testing"

	"beautyshop/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenGORM("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseGORM(db) })
	return db
}

func TestOpenGORM_UnsupportedDriver(t *testing.T) {
	_, err := OpenGORM("oracle", "")
	assert.Error(t, err)
}

func TestNewGORMLogger_SkipsRecordNotFound(t *testing.T) {
	db := openTestDB(t)

	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: NewGORMLogger(log.New(&buf, "", 0))})

	var user models.User
	err := quiet.First(&user, "username = ?", "nobody").Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, buf.String())

	err = quiet.Raw("SELECT * FROM no_such_table").Scan(&user).Error
	assert.Error(t, err)
	assert.NotEmpty(t, buf.String())
}

func TestOpenGORM_TranslatesDuplicateKeys(t *testing.T) {
	db := openTestDB(t)

	first := models.User{ID: uuid.New().String(), Username: "ann", Email: "ann@example.com", Password: "hash"}
	require.NoError(t, db.Create(&first).Error)

	dup := models.User{ID: uuid.New().String(), Username: "ann", Email: "other@example.com", Password: "hash"}
	err := db.Create(&dup).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
