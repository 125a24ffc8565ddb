package storage

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/sirupsen/logrus"
)

const uploadBlockSize = 1024 * 1024

// BlobArchive keeps report exports in an Azure Blob Storage container
type BlobArchive struct {
	client    *azblob.Client
	container string
}

var _ StorageInterface = (*BlobArchive)(nil)

// NewBlobArchive authenticates with the default Azure credential chain and
// makes sure the report container exists
func NewBlobArchive(ctx context.Context, account, container string) (*BlobArchive, error) {
	if account == "" {
		return nil, fmt.Errorf("storage account name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azblob.NewClient(fmt.Sprintf("https://%s.blob.core.windows.net/", account), credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	archive := &BlobArchive{client: client, container: container}
	if err := archive.createContainer(ctx); err != nil {
		return nil, err
	}
	return archive, nil
}

func (a *BlobArchive) createContainer(ctx context.Context) error {
	_, err := a.client.CreateContainer(ctx, a.container, nil)
	switch {
	case err == nil:
		logrus.Infof("Created report container %s", a.container)
	case bloberror.HasCode(err, bloberror.ContainerAlreadyExists):
		logrus.Debugf("Report container %s already exists", a.container)
	default:
		return fmt.Errorf("failed to create report container %s: %w", a.container, err)
	}
	return nil
}

// Store uploads a report export, tagging the blob with the export's MIME type
// so browsers open archived PDFs directly
func (a *BlobArchive) Store(ctx context.Context, name string, data []byte) error {
	contentType := ContentType(name)
	_, err := a.client.UploadBuffer(ctx, a.container, name, data, &azblob.UploadBufferOptions{
		BlockSize:   uploadBlockSize,
		Concurrency: 3,
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}

	logrus.Infof("Archived report export %s (%d bytes)", name, len(data))
	return nil
}

// Retrieve downloads a report export. Missing blobs yield ErrNotFound.
func (a *BlobArchive) Retrieve(ctx context.Context, name string) ([]byte, error) {
	download, err := a.client.DownloadStream(ctx, a.container, name, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer download.Body.Close()

	data, err := io.ReadAll(download.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// List returns the sorted names of report exports under prefix
func (a *BlobArchive) List(ctx context.Context, prefix string) ([]string, error) {
	names := []string{}
	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list report archive: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}
