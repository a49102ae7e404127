package webpenc

import "testing"

func TestConstErr_Error(t *testing.T) {
	cases := []struct {
		name       string
		giveConst  Error
		wantString string
	}{
		{
			name:       "ErrUnsupportedFormat",
			giveConst:  ErrUnsupportedFormat,
			wantString: "webpenc: unsupported image format (jpeg and png are allowed)",
		},
		{
			name:       "ErrEmptySource",
			giveConst:  ErrEmptySource,
			wantString: "webpenc: empty source (nothing to decode)",
		},
		{
			name:       "0",
			giveConst:  Error(0),
			wantString: "webpenc: unknown error",
		},
		{
			name:       "255",
			giveConst:  Error(255),
			wantString: "webpenc: unknown error",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.giveConst.Error(); tt.wantString != got {
				t.Errorf(`want: "%s", got: "%s"`, tt.wantString, got)
			}
		})
	}
}
