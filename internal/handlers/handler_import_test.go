package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/jobs"
)

const importCSV = "group_id,ledger_id,branch_id,voucher_date,account_id,debit,credit\n" +
	"G1,L1,BR-1,2026-03-10,A,100,\n" +
	"G1,L1,BR-1,2026-03-10,B,,100\n" +
	"G2,L1,BR-1,2026-03-11,A,5,\n"

func (suite *VoucherHandlerTestSuite) postImport(router http.Handler, url, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-1", domain.PermVoucherWrite))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (suite *VoucherHandlerTestSuite) TestImport_Synchronous() {
	suite.mockImportService.On("Import", mock.Anything, isUser1, mock.MatchedBy(func(rows []domain.ImportRow) bool {
		return len(rows) == 3 && rows[0].GroupID == "G1" && rows[2].GroupID == "G2"
	}), domain.StatusTemporary).Return([]domain.ImportResult{
		{GroupID: "G1", VoucherID: "V1", VoucherNumber: "42"},
		{GroupID: "G2", Error: apperrors.ErrUnbalanced.Error()},
	}, nil).Once()

	w := suite.postImport(suite.router, "/api/v1/vouchers/import", "text/csv", bytes.NewBufferString(importCSV))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"saved":1`)
	suite.Contains(w.Body.String(), `"failed":1`)
	suite.Contains(w.Body.String(), `"voucherNumber":"42"`)
}

func (suite *VoucherHandlerTestSuite) TestImport_Multipart() {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "vouchers.csv")
	suite.Require().NoError(err)
	_, err = part.Write([]byte(importCSV))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	suite.mockImportService.On("Import", mock.Anything, isUser1, mock.Anything, domain.StatusDraft).
		Return([]domain.ImportResult{{GroupID: "G1"}, {GroupID: "G2"}}, nil).Once()

	w := suite.postImport(suite.router, "/api/v1/vouchers/import?status=draft", mw.FormDataContentType(), &body)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *VoucherHandlerTestSuite) TestImport_Queued() {
	queue := new(MockImportQueue)
	router := suite.newRouter(queue)
	queue.On("EnqueueImport", mock.Anything, mock.MatchedBy(func(p jobs.ImportPayload) bool {
		return p.Actor.UserID == "user-1" && len(p.Rows) == 3 && p.Target == domain.StatusTemporary
	})).Return("task-1", nil).Once()

	w := suite.postImport(router, "/api/v1/vouchers/import", "text/csv", bytes.NewBufferString(importCSV))

	suite.Equal(http.StatusAccepted, w.Code)
	suite.Contains(w.Body.String(), `"taskID":"task-1"`)
	queue.AssertExpectations(suite.T())
	suite.mockImportService.AssertNotCalled(suite.T(), "Import", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherHandlerTestSuite) TestImport_Rejections() {
	w := suite.postImport(suite.router, "/api/v1/vouchers/import?status=final", "text/csv", bytes.NewBufferString(importCSV))
	suite.Equal(http.StatusBadRequest, w.Code)

	malformed := strings.Replace(importCSV, "100,\n", "1O0,\n", 1)
	w = suite.postImport(suite.router, "/api/v1/vouchers/import", "text/csv", bytes.NewBufferString(malformed))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), `"row":1`)

	w = suite.postImport(suite.router, "/api/v1/vouchers/import", "text/csv", bytes.NewBufferString("group_id,account_id\nG1,A\n"))
	suite.Equal(http.StatusBadRequest, w.Code)
}
