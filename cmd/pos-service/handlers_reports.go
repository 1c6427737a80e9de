package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/report"
)

const dateLayout = "2006-01-02"

// dateParam reads a YYYY-MM-DD query value in the report zone; empty yields zero.
func dateParam(c *gin.Context, name string, loc *time.Location) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be YYYY-MM-DD", name)
	}
	return t, nil
}

func dateRange(c *gin.Context, loc *time.Location) (time.Time, time.Time, error) {
	from, err := dateParam(c, "from", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := dateParam(c, "to", loc)
	return from, to, err
}

// salesReportHandler godoc
//
//	@Summary	Sales by item and size
//	@Tags		reports
//	@Produce	json
//	@Param		from	query		string	false	"YYYY-MM-DD, defaults to today"
//	@Param		to		query		string	false	"YYYY-MM-DD, defaults to from"
//	@Param		search	query		string	false	"item name filter"
//	@Success	200		{object}	report.SalesReport
//	@Failure	400		{object}	httpx.HTTPError
//	@Security	BearerAuth
//	@Router		/reports/sales [get]
func salesReportHandler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, to, err := dateRange(c, svc.Location())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		rep, err := svc.Sales(c.Request.Context(), from, to, c.Query("search"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}

func listing(c *gin.Context, svc *report.Service) (report.OrderListing, error) {
	from, to, err := dateRange(c, svc.Location())
	if err != nil {
		return report.OrderListing{}, err
	}
	f := report.ListingFilter{Status: c.Query("status"), Search: c.Query("search")}
	return svc.Orders(c.Request.Context(), from, to, f)
}

// ordersReportHandler godoc
//
//	@Summary	Order listing
//	@Tags		reports
//	@Produce	json
//	@Param		from	query		string	false	"YYYY-MM-DD, defaults to today"
//	@Param		to		query		string	false	"YYYY-MM-DD, defaults to from"
//	@Param		status	query		string	false	"Completed (default), Pending, Cancelled or All"
//	@Param		search	query		string	false	"table number filter"
//	@Success	200		{object}	report.OrderListing
//	@Failure	400		{object}	httpx.HTTPError
//	@Security	BearerAuth
//	@Router		/reports/orders [get]
func ordersReportHandler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := listing(c, svc)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

// deleteReportRowHandler deletes an order from the listing selected by the
// same query parameters and returns the listing without it.
func deleteReportRowHandler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := listing(c, svc)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if err := svc.DeleteRow(c.Request.Context(), httpx.Session(c), &l, c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func dashboardHandler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Dashboard(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}
