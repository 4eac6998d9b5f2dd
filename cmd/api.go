package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/algox/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the catalog. The stored session is attached.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path, err := apiPath(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return err
	}
	return r.writeResponse(resp.StatusCode, resp.IsJSON, resp.JSONData, resp.Body, !cmd.Bool("json"))
}

// APIPost makes a direct POST request with a JSON body.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path, err := apiPath(cmd)
	if err != nil {
		return err
	}

	data := cmd.String("data")
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidArgument, err)
	}

	r.logger.Info("POST request", "path", path)

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return err
	}
	return r.writeResponse(resp.StatusCode, resp.IsJSON, resp.JSONData, resp.Body, true)
}

func apiPath(cmd *cli.Command) (string, error) {
	path := strings.TrimSpace(cmd.StringArg("path"))
	if path == "" {
		return "", fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, nil
}

// writeResponse prints a raw response body. Non-2xx statuses are printed and then returned as errors.
func (r *Runner) writeResponse(status int, isJSON bool, data any, body []byte, pretty bool) error {
	if isJSON {
		if err := r.writeJSON(data, pretty); err != nil {
			return err
		}
	} else {
		r.output.Write(body)
		r.output.Write([]byte("\n"))
	}

	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrTransport, status)
	}
	return nil
}
