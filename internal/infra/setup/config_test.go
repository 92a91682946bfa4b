package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBOptionsDSN(t *testing.T) {
	opts := DBOptions{User: "u", Password: "p", Host: "db", Port: "3306", Name: "yatube"}

	dsn, err := opts.DSN()
	require.NoError(t, err)
	assert.Equal(t, "u:p@tcp(db:3306)/yatube?charset=utf8mb4&parseTime=True&loc=Local", dsn, "默认使用 mysql")

	opts.Driver, opts.Port = DriverPostgres, "5432"
	dsn, err = opts.DSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "host=db port=5432 user=u password=p dbname=yatube")

	opts.Driver = "sqlite"
	_, err = opts.DSN()
	assert.Error(t, err)
}
