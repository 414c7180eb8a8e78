package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	"github.com/sirupsen/logrus"
)

type channel struct {
	client   *Client
	settings settings
}

var _ ports.Channel = (*channel)(nil)

func (ch *channel) Account() string {
	return ch.settings.Username
}

func (ch *channel) Export() ([]byte, error) {
	return ch.settings.encode()
}

func (ch *channel) Logout(ctx context.Context) error {
	form := url.Values{}
	form.Set("device_id", ch.settings.DeviceID)

	resp, err := ch.client.exec.DoOnce(ctx, ch.client.formRequest(http.MethodPost, "/accounts/logout/", form, ch.settings.SessionID))
	if err != nil {
		return fmt.Errorf("instagram: logout: %w", err)
	}

	var out envelope
	if err := decodeEnvelope(resp, &out); err != nil {
		return fmt.Errorf("instagram: logout: %w", err)
	}
	if out.Status != statusOK {
		return fmt.Errorf("instagram: logout: %s", out.reason())
	}
	return nil
}

func (ch *channel) PublishSingle(ctx context.Context, imagePath, caption string) error {
	uploadID, err := ch.upload(ctx, imagePath)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("upload_id", uploadID)
	form.Set("caption", caption)
	form.Set("device_id", ch.settings.DeviceID)

	resp, err := ch.client.exec.DoOnce(ctx, ch.client.formRequest(http.MethodPost, "/media/configure/", form, ch.settings.SessionID))
	if err != nil {
		return fmt.Errorf("instagram: configure %s: %w", filepath.Base(imagePath), err)
	}

	return ch.confirm(resp, logrus.Fields{"upload_id": uploadID, "image": filepath.Base(imagePath)})
}

func (ch *channel) PublishCarousel(ctx context.Context, imagePaths []string, caption string) error {
	if len(imagePaths) == 0 {
		return errors.New("instagram: carousel has no images")
	}

	children := make([]sidecarChild, 0, len(imagePaths))
	for _, path := range imagePaths {
		uploadID, err := ch.upload(ctx, path)
		if err != nil {
			return err
		}
		children = append(children, sidecarChild{UploadID: uploadID})
	}

	body, err := json.Marshal(sidecarRequest{
		Caption:          caption,
		ClientSidecarID:  ch.client.newID(),
		DeviceID:         ch.settings.DeviceID,
		ChildrenMetadata: children,
	})
	if err != nil {
		return fmt.Errorf("instagram: encode sidecar: %w", err)
	}

	resp, err := ch.client.exec.DoOnce(ctx, ch.client.jsonRequest(http.MethodPost, "/media/configure_sidecar/", body, ch.settings.SessionID))
	if err != nil {
		return fmt.Errorf("instagram: configure sidecar: %w", err)
	}

	return ch.confirm(resp, logrus.Fields{"children": len(children)})
}

// upload sends the raw image bytes. The upload id makes a replay harmless,
// so this is the only retried publish step.
func (ch *channel) upload(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("instagram: read %s: %w", imagePath, err)
	}

	uploadID := ch.client.newID()
	params, err := json.Marshal(map[string]string{"upload_id": uploadID, "media_type": "1"})
	if err != nil {
		return "", fmt.Errorf("instagram: encode upload params: %w", err)
	}

	endpoint := ch.client.apiURL + "/rupload_igphoto/" + url.PathEscape(uploadID)
	resp, err := ch.client.exec.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		req.Header.Set("X-Entity-Name", uploadID)
		req.Header.Set("X-Entity-Length", strconv.Itoa(len(data)))
		req.Header.Set("Offset", "0")
		req.Header.Set("X-Instagram-Rupload-Params", string(params))
		ch.client.decorate(req, ch.settings.SessionID)
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("instagram: upload %s: %w", filepath.Base(imagePath), err)
	}

	var out uploadResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return "", fmt.Errorf("instagram: upload %s: %w", filepath.Base(imagePath), err)
	}
	if out.Status != statusOK {
		return "", fmt.Errorf("instagram: upload %s: %w: %s", filepath.Base(imagePath), domain.ErrPublishRejected, out.reason())
	}
	if out.UploadID != "" {
		uploadID = out.UploadID
	}

	return uploadID, nil
}

func (ch *channel) confirm(resp *http.Response, fields logrus.Fields) error {
	var out configureResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return fmt.Errorf("instagram: configure: %w", err)
	}
	if out.Status != statusOK {
		return fmt.Errorf("instagram: configure: %w: %s", domain.ErrPublishRejected, out.reason())
	}

	ch.client.logger.WithFields(fields).WithField("media_id", out.Media.ID).Debug("media configured")
	return nil
}

type sidecarRequest struct {
	Caption          string         `json:"caption"`
	ClientSidecarID  string         `json:"client_sidecar_id"`
	DeviceID         string         `json:"device_id"`
	ChildrenMetadata []sidecarChild `json:"children_metadata"`
}

type sidecarChild struct {
	UploadID string `json:"upload_id"`
}
