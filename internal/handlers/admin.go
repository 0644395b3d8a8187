package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/store"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/wizard"
)

// RequireAdmin checks HTTP basic auth against AdminUser and the bcrypt
// AdminPasswordHash. Without a hash the admin API is closed.
func (e *Env) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if e.AdminPasswordHash == "" {
			writeError(w, http.StatusForbidden, "admin api disabled")
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(e.AdminUser)) != 1 ||
			bcrypt.CompareHashAndPassword([]byte(e.AdminPasswordHash), []byte(pass)) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="configurator admin"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleAdminPricing serves /api/admin/pricing/{productLine}.
//
// GET -> latest published table (404 when none is published)
// PUT -> publish the body as the next version
func (e *Env) HandleAdminPricing(w http.ResponseWriter, r *http.Request) {
	line := r.PathValue("productLine")
	if _, ok := wizard.LookupProductLine(line); !ok {
		writeError(w, http.StatusNotFound, "unknown product line "+strconv.Quote(line))
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := e.Pricing.Fetch(r.Context(), line)
		if err != nil {
			e.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodPut:
		defer r.Body.Close()

		var t pricing.Table
		if err := decodeJSON(r, &t); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		published, err := e.Pricing.Publish(r.Context(), line, &t)
		if err != nil {
			e.writeServiceError(w, r, err)
			return
		}
		e.logger().Info("pricing table published",
			zap.String("product_line", line),
			zap.Int64("version", published.Version))
		writeJSON(w, http.StatusOK, published)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type leadsResponse struct {
	Items []leadItem `json:"items"`
}

// HandleAdminLeads serves GET /api/admin/leads?productLine=&since=&limit=&offset=.
func (e *Env) HandleAdminLeads(w http.ResponseWriter, r *http.Request) {
	f, err := leadFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, err := e.Leads.ListLeads(r.Context(), f)
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	resp := leadsResponse{Items: make([]leadItem, 0, len(recs))}
	for _, rec := range recs {
		resp.Items = append(resp.Items, newLeadItem(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleAdminLeadsXLSX serves the same list as an Excel workbook.
func (e *Env) HandleAdminLeadsXLSX(w http.ResponseWriter, r *http.Request) {
	f, err := leadFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, err := e.Leads.ListLeads(r.Context(), f)
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}

	book, err := LeadsWorkbook(recs)
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	defer book.Close()

	filename := "aanvragen_" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := book.Write(w); err != nil {
		e.logger().Error("write leads workbook", zap.Error(err))
	}
}

func leadFilter(r *http.Request) (store.LeadFilter, error) {
	q := r.URL.Query()
	f := store.LeadFilter{ProductLine: q.Get("productLine")}

	if s := q.Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse(time.DateOnly, s)
		}
		if err != nil {
			return f, errors.New("since must be a date (2006-01-02) or RFC 3339 time")
		}
		f.Since = t
	}
	for name, dst := range map[string]*int{"limit": &f.Limit, "offset": &f.Offset} {
		s := q.Get(name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return f, errors.New(name + " must be a non-negative number")
		}
		*dst = n
	}
	return f, nil
}
