package v1

import (
	"net/http"

	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterDepositRoutes registers the routes for deposits with
// the RouterGroup that is passed.
func (co Controller) RegisterDepositRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetDeposits)
		r.POST("", co.CreateDeposit)
	}

	// Incomes that can fund a deposit
	{
		r.OPTIONS("/available-incomes", httputil.OptionsGet)
		r.GET("/available-incomes", co.GetAvailableIncomes)
	}

	// Deposit with ID
	{
		r.OPTIONS("/:id", co.OptionsDepositDetail)
		r.GET("/:id", co.GetDeposit)
		r.PATCH("/:id", co.UpdateDeposit)
		r.DELETE("/:id", co.DeleteDeposit)
	}

	// Transactions of a deposit
	{
		r.OPTIONS("/:id/transactions", httputil.OptionsGetPost)
		r.GET("/:id/transactions", co.GetDepositTransactions)
		r.POST("/:id/transactions", co.CreateDepositTransaction)
	}

	// Closing a deposit
	{
		r.OPTIONS("/:id/close", httputil.OptionsPatch)
		r.PATCH("/:id/close", co.CloseDeposit)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Deposits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deposits/{id} [options]
func (co Controller) OptionsDepositDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Deposit{})
}

// @Summary		Create deposit
// @Description	Creates a new deposit with an opening balance
// @Tags			Deposits
// @Produce		json
// @Success		201		{object}	DepositResponse
// @Failure		400		{object}	DepositResponse
// @Failure		500		{object}	DepositResponse
// @Param			deposit	body		DepositEditable	true	"Deposit"
// @Router			/v1/deposits [post]
func (co Controller) CreateDeposit(c *gin.Context) {
	var editable DepositEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	deposit := editable.model(auth.UserID(c))
	err = models.DB.Create(&deposit).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	data := newDeposit(c, deposit)
	c.JSON(http.StatusCreated, DepositResponse{Data: &data})
}

// @Summary		Get available incomes
// @Description	Returns the incomes that still have an available amount and can therefore fund a deposit or payment
// @Tags			Deposits
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		500	{object}	IncomeListResponse
// @Router			/v1/deposits/available-incomes [get]
func (co Controller) GetAvailableIncomes(c *gin.Context) {
	var incomes []models.Income
	err := models.DB.
		Order("date DESC").
		Where("user_id = ? AND used_amount < amount", auth.UserID(c)).
		Find(&incomes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &s})
		return
	}

	data := make([]Income, 0, len(incomes))
	for _, income := range incomes {
		data = append(data, newIncome(c, income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{Data: data})
}

// @Summary		Get transactions
// @Description	Returns the transactions of a deposit, newest first
// @Tags			Deposits
// @Produce		json
// @Success		200	{object}	DepositTransactionListResponse
// @Failure		400	{object}	DepositTransactionListResponse
// @Failure		404	{object}	DepositTransactionListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deposits/{id}/transactions [get]
func (co Controller) GetDepositTransactions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositTransactionListResponse{Error: &s})
		return
	}

	var deposit models.Deposit
	err = models.DB.First(&deposit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositTransactionListResponse{Error: &s})
		return
	}

	var transactions []models.DepositTransaction
	err = models.DB.
		Order("date DESC").
		Where("deposit_id = ?", deposit.ID).
		Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositTransactionListResponse{Error: &s})
		return
	}

	data := make([]DepositTransaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newDepositTransaction(transaction))
	}

	c.JSON(http.StatusOK, DepositTransactionListResponse{Data: data})
}

// @Summary		Create transaction
// @Description	Moves money in or out of the deposit. Deposits can be funded from an income, which debits the income's available amount in the same transaction.
// @Tags			Deposits
// @Accept			json
// @Produce		json
// @Success		201			{object}	DepositTransactionResponse
// @Failure		400			{object}	DepositTransactionResponse
// @Failure		404			{object}	DepositTransactionResponse
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		DepositTransactionEditable	true	"Transaction"
// @Router			/v1/deposits/{id}/transactions [post]
func (co Controller) CreateDepositTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositTransactionResponse{Error: &s})
		return
	}

	var deposit models.Deposit
	err = models.DB.First(&deposit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositTransactionResponse{Error: &s})
		return
	}

	var editable DepositTransactionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositTransactionResponse{Error: &s})
		return
	}

	var transaction models.DepositTransaction
	switch editable.Type {
	case models.TransactionDeposit:
		transaction, err = models.DepositFunds(models.DB, &deposit, editable.Amount, editable.Source, editable.Note)
	case models.TransactionWithdrawal:
		transaction, err = models.WithdrawFunds(models.DB, &deposit, editable.Amount, editable.Note)
	default:
		s := "the transaction type must be one of deposit, withdrawal"
		c.JSON(http.StatusBadRequest, DepositTransactionResponse{Error: &s})
		return
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositTransactionResponse{Error: &s})
		return
	}

	data := newDepositTransaction(transaction)
	c.JSON(http.StatusCreated, DepositTransactionResponse{Data: &data})
}

// @Summary		Close deposit
// @Description	Withdraws the remaining balance and closes the deposit. A closed deposit can no longer fund payments.
// @Tags			Deposits
// @Produce		json
// @Success		200	{object}	DepositResponse
// @Failure		400	{object}	DepositResponse
// @Failure		404	{object}	DepositResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deposits/{id}/close [patch]
func (co Controller) CloseDeposit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	var deposit models.Deposit
	err = models.DB.First(&deposit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	err = models.CloseDeposit(models.DB, &deposit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	data := newDeposit(c, deposit)
	c.JSON(http.StatusOK, DepositResponse{Data: &data})
}

// @Summary		Get deposits
// @Description	Returns a list of deposits
// @Tags			Deposits
// @Produce		json
// @Success		200	{object}	DepositListResponse
// @Failure		400	{object}	DepositListResponse
// @Router			/v1/deposits [get]
// @Param			name	query	string	false	"Filter by glob pattern in the name"
// @Param			bank	query	string	false	"Filter by bank"
// @Param			closed	query	bool	false	"Filter by closed state"
// @Param			offset	query	uint	false	"The offset of the first deposit returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of deposits to return. Defaults to 50."
func (co Controller) GetDeposits(c *gin.Context) {
	var filter DepositQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	var deposits []models.Deposit
	err = q.Find(&deposits).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositListResponse{Error: &s})
		return
	}

	if slices.Contains(setFields, "Name") {
		matched := make([]models.Deposit, 0, len(deposits))
		for _, deposit := range deposits {
			if glob.Glob(filter.Name, deposit.Name) {
				matched = append(matched, deposit)
			}
		}
		deposits = matched
	}

	total := int64(len(deposits))

	if filter.Offset > uint(len(deposits)) {
		deposits = []models.Deposit{}
	} else {
		deposits = deposits[filter.Offset:]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(deposits) {
		deposits = deposits[:limit]
	}

	data := make([]Deposit, 0, len(deposits))
	for _, deposit := range deposits {
		data = append(data, newDeposit(c, deposit))
	}

	c.JSON(http.StatusOK, DepositListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get deposit
// @Description	Returns a specific deposit
// @Tags			Deposits
// @Produce		json
// @Success		200	{object}	DepositResponse
// @Failure		400	{object}	DepositResponse
// @Failure		404	{object}	DepositResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deposits/{id} [get]
func (co Controller) GetDeposit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	var deposit models.Deposit
	err = models.DB.First(&deposit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	data := newDeposit(c, deposit)
	c.JSON(http.StatusOK, DepositResponse{Data: &data})
}

// @Summary		Update deposit
// @Description	Update an existing deposit. Only values to be updated need to be specified. The balance can not be edited directly, book transactions instead.
// @Tags			Deposits
// @Accept			json
// @Produce		json
// @Success		200		{object}	DepositResponse
// @Failure		400		{object}	DepositResponse
// @Failure		404		{object}	DepositResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			deposit	body		DepositEditable	true	"Deposit"
// @Router			/v1/deposits/{id} [patch]
func (co Controller) UpdateDeposit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	var deposit models.Deposit
	err = models.DB.First(&deposit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DepositEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	// The balance is only changed through transactions
	updateFields = slices.DeleteFunc(updateFields, func(f any) bool {
		return f == "CurrentBalance"
	})

	var data DepositEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	err = models.DB.Model(&deposit).Select("", updateFields...).Updates(data.model(deposit.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DepositResponse{Error: &s})
		return
	}

	r := newDeposit(c, deposit)
	c.JSON(http.StatusOK, DepositResponse{Data: &r})
}

// @Summary		Delete deposit
// @Description	Deletes a deposit and its transaction history
// @Tags			Deposits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/deposits/{id} [delete]
func (co Controller) DeleteDeposit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var deposit models.Deposit
	err = models.DB.First(&deposit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Where("deposit_id = ?", deposit.ID).Delete(&models.DepositTransaction{}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&deposit).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
