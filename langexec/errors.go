package langexec

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/algoprep/grader/srvcerror"
)

const ErrCodeUnsupportedLanguage = "unsupported_language"

func ErrUnsupportedLanguage(language string, supported []string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnsupportedLanguage,
		fmt.Sprintf("unsupported language %q; supported languages are: %s",
			language, strings.Join(supported, ", ")),
	).SetHttpStatusCode(http.StatusBadRequest)
}
