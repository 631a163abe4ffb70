package repository

import (
	"io/ioutil"
	"net/http"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"

	"github.com/x-xyz/goauction/base/ctx"
)

type cloudStorageSuite struct {
	suite.Suite
	client        *storage.Client
	bucketName    string
	bucketUrl     string
	testingFolder string
}

func (s *cloudStorageSuite) SetupSuite() {
	client, err := storage.NewClient(ctx.Background())
	s.Require().NoError(err)

	s.client = client
	s.bucketName = os.Getenv("GCS_TEST_BUCKET")
	s.bucketUrl = os.Getenv("GCS_TEST_BUCKET_URL")
	s.testingFolder = "testing"
}

func (s *cloudStorageSuite) TearDownSuite() {
	c := ctx.Background()
	bucket := s.client.Bucket(s.bucketName)
	it := bucket.Objects(c, &storage.Query{Prefix: s.testingFolder})
	for {
		attr, err := it.Next()
		if err == iterator.Done {
			break
		}
		s.NoError(err)
		s.NoError(bucket.Object(attr.Name).Delete(c))
	}
	s.NoError(s.client.Close())
}

func TestCloudStorageWriter(t *testing.T) {
	if os.Getenv("GCS_TEST_BUCKET") == "" || os.Getenv("GCS_TEST_BUCKET_URL") == "" {
		t.Skip("GCS_TEST_BUCKET and GCS_TEST_BUCKET_URL not set")
	}
	suite.Run(t, new(cloudStorageSuite))
}

func (s *cloudStorageSuite) TestStore() {
	c := ctx.Background()
	body := []byte("auction image bytes")

	w, err := NewCloudStorageWriter(&CloudStorageWriterCfg{
		Client:     s.client,
		BucketName: s.bucketName,
		Timeout:    10 * time.Second,
		Url:        s.bucketUrl + "/",
	})
	s.Require().NoError(err)

	url, err := w.Store(c, s.testingFolder+"/images/u1/a.txt", body, "text/plain")
	s.Require().NoError(err)
	s.Equal(s.bucketUrl+"/"+s.testingFolder+"/images/u1/a.txt", url)

	got, err := httpGet(c, url)
	s.Require().NoError(err)
	s.Equal(body, got)
}

func httpGet(c ctx.Ctx, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(c, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return ioutil.ReadAll(resp.Body)
}
