package streaming

import (
	"fmt"
	"strconv"
	"strings"
)

// Schema metadata keys for the document envelope
const (
	MetaResultStatus = "esd.resultStatus"
	MetaMessage      = "esd.message"
	MetaConfigPrefix = "esd.config."
)

// EncodeMetadata flattens envelope fields into Arrow schema metadata
func EncodeMetadata(resultStatus int, message string, configs map[string]string) map[string]string {
	md := map[string]string{
		MetaResultStatus: strconv.Itoa(resultStatus),
	}
	if message != "" {
		md[MetaMessage] = message
	}
	for k, v := range configs {
		md[MetaConfigPrefix+k] = v
	}
	return md
}

// DecodeMetadata is the inverse of EncodeMetadata. A missing result status decodes as 0;
// configs is nil when the stream carried none.
func DecodeMetadata(md map[string]string) (int, string, map[string]string, error) {
	status := 0
	if raw, ok := md[MetaResultStatus]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, "", nil, fmt.Errorf("invalid %s %q: %w", MetaResultStatus, raw, err)
		}
		status = n
	}

	var configs map[string]string
	for k, v := range md {
		if !strings.HasPrefix(k, MetaConfigPrefix) {
			continue
		}
		if configs == nil {
			configs = make(map[string]string)
		}
		configs[strings.TrimPrefix(k, MetaConfigPrefix)] = v
	}
	return status, md[MetaMessage], configs, nil
}
