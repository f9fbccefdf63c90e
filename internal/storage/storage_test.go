package storage

import "testing"

func TestParseLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		location string
		bucket   string
		key      string
		wantErr  bool
	}{
		{location: "s3://docs/receipts/RCP-1/scan.pdf", bucket: "docs", key: "receipts/RCP-1/scan.pdf"},
		{location: "s3://bucket/key", bucket: "bucket", key: "key"},
		{location: "s3://bucket", wantErr: true},
		{location: "s3://bucket/", wantErr: true},
		{location: "s3:///key", wantErr: true},
		{location: "https://bucket/key", wantErr: true},
		{location: "", wantErr: true},
	}

	for _, tt := range tests {
		bucket, key, err := ParseLocation(tt.location)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLocation(%q): expected error", tt.location)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLocation(%q): %v", tt.location, err)
			continue
		}
		if bucket != tt.bucket || key != tt.key {
			t.Errorf("ParseLocation(%q) = (%q, %q), want (%q, %q)", tt.location, bucket, key, tt.bucket, tt.key)
		}
	}
}
