// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package directory

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/suite"

	"github.com/greenmaskio/schemalink/internal/storages"
)

const testDDL = "CREATE TABLE customers (customer_id SERIAL PRIMARY KEY);"

type DirectorySuite struct {
	suite.Suite
	tmpDir string
	st     *Storage
}

func (suite *DirectorySuite) SetupSuite() {
	var err error
	suite.tmpDir = suite.T().TempDir()

	suite.Require().NoError(os.MkdirAll(path.Join(suite.tmpDir, "schemas", "retail"), 0750))
	suite.Require().NoError(os.WriteFile(path.Join(suite.tmpDir, "schema.sql"), []byte(testDDL), 0600))
	suite.Require().NoError(
		os.WriteFile(path.Join(suite.tmpDir, "schemas", "retail", "v1.sql"), []byte(testDDL), 0600),
	)

	f, err := os.Create(path.Join(suite.tmpDir, "schema.sql.gz"))
	suite.Require().NoError(err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(testDDL))
	suite.Require().NoError(err)
	suite.Require().NoError(gz.Close())
	suite.Require().NoError(f.Close())

	suite.st, err = NewStorage(&Config{Path: suite.tmpDir})
	suite.Require().NoError(err)
}

func (suite *DirectorySuite) TestNewStorage_NotADirectory() {
	_, err := NewStorage(&Config{Path: path.Join(suite.tmpDir, "schema.sql")})
	suite.Require().Error(err)
	_, err = NewStorage(&Config{Path: path.Join(suite.tmpDir, "missing")})
	suite.Require().Error(err)
}

func (suite *DirectorySuite) TestExists() {
	ok, err := suite.st.Exists(context.Background(), "schema.sql")
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.st.Exists(context.Background(), "missing.sql")
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *DirectorySuite) TestGetObject_NotFound() {
	_, err := suite.st.GetObject(context.Background(), "missing.sql")
	suite.Require().ErrorIs(err, storages.ErrFileNotFound)
}

func (suite *DirectorySuite) TestReadObject() {
	data, err := storages.ReadObject(context.Background(), suite.st, "schema.sql")
	suite.Require().NoError(err)
	suite.Equal(testDDL, string(data))

	data, err = storages.ReadObject(context.Background(), suite.st, "schema.sql.gz")
	suite.Require().NoError(err)
	suite.Equal(testDDL, string(data))

	_, err = storages.ReadObject(context.Background(), suite.st, "missing.sql")
	suite.Require().ErrorIs(err, storages.ErrFileNotFound)
}

func (suite *DirectorySuite) TestWalk() {
	files, err := storages.Walk(context.Background(), suite.st, "")
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"schema.sql", "schema.sql.gz", "schemas/retail/v1.sql"}, files)
}

func (suite *DirectorySuite) TestSubStorage() {
	sub := suite.st.SubStorage("schemas/retail", true)
	suite.Equal("retail", sub.Dirname())
	data, err := storages.ReadObject(context.Background(), sub, "v1.sql")
	suite.Require().NoError(err)
	suite.Equal(testDDL, string(data))
}

func TestDirectoryStorage(t *testing.T) {
	suite.Run(t, new(DirectorySuite))
}
