package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-admin/internal/application/book"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// BookHandler 图书、作者、出版社HTTP处理器
type BookHandler struct {
	listBooksUseCase       *appbook.ListBooksUseCase
	getBookUseCase         *appbook.GetBookUseCase
	createBookUseCase      *appbook.CreateBookUseCase
	updateBookUseCase      *appbook.UpdateBookUseCase
	deleteBookUseCase      *appbook.DeleteBookUseCase
	createReviewUseCase    *appbook.CreateReviewUseCase
	listAuthorsUseCase     *appbook.ListAuthorsUseCase
	createAuthorUseCase    *appbook.CreateAuthorUseCase
	listPublishersUseCase  *appbook.ListPublishersUseCase
	createPublisherUseCase *appbook.CreatePublisherUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	createReviewUseCase *appbook.CreateReviewUseCase,
	listAuthorsUseCase *appbook.ListAuthorsUseCase,
	createAuthorUseCase *appbook.CreateAuthorUseCase,
	listPublishersUseCase *appbook.ListPublishersUseCase,
	createPublisherUseCase *appbook.CreatePublisherUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:       listBooksUseCase,
		getBookUseCase:         getBookUseCase,
		createBookUseCase:      createBookUseCase,
		updateBookUseCase:      updateBookUseCase,
		deleteBookUseCase:      deleteBookUseCase,
		createReviewUseCase:    createReviewUseCase,
		listAuthorsUseCase:     listAuthorsUseCase,
		createAuthorUseCase:    createAuthorUseCase,
		listPublishersUseCase:  listPublishersUseCase,
		createPublisherUseCase: createPublisherUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页、搜索、按分类/作者/价格过滤，sort_by非法时按created_at排序
// @Tags         图书
// @Produce      json
// @Param        page       query int    false "页码"  default(1)
// @Param        limit      query int    false "每页数量" default(10)
// @Param        search     query string false "标题/简介关键词"
// @Param        category   query string false "分类名"
// @Param        author     query string false "作者名"
// @Param        min_price  query number false "最低价格"
// @Param        max_price  query number false "最高价格"
// @Param        sort_by    query string false "title | price | created_at | pub_date"
// @Param        sort_order query string false "ASC | DESC"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.BookListQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:      q.Page,
		PageSize:  q.Limit,
		Search:    q.Search,
		Category:  q.Category,
		Author:    q.Author,
		MinPrice:  parseDecimal(q.MinPrice),
		MaxPrice:  parseDecimal(q.MaxPrice),
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetBook 图书详情
// @Summary      图书详情（含最近5条评价）
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetailResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// CreateBook 新增图书
// @Summary      新增图书（管理员）
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误或引用不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	var authorIDs, categoryIDs []uint
	if req.AuthorIDs != nil {
		authorIDs = *req.AuthorIDs
	}
	if req.CategoryIDs != nil {
		categoryIDs = *req.CategoryIDs
	}

	resp, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Price:       req.Price,
		StockQty:    req.StockQty,
		PublisherID: req.PublisherID,
		PubDate:     parseDate(req.PubDate),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		AuthorIDs:   authorIDs,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Book created successfully", resp)
}

// UpdateBook 修改图书
// @Summary      修改图书（管理员）
// @Description  author_ids/category_ids缺省时保留原关联
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		ISBN:        req.ISBN,
		Title:       req.Title,
		Price:       req.Price,
		StockQty:    req.StockQty,
		PublisherID: req.PublisherID,
		PubDate:     parseDate(req.PubDate),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		AuthorIDs:   req.AuthorIDs,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, "Book updated successfully", resp)
}

// DeleteBook 删除图书
// @Summary      删除图书（管理员，软删除）
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Book deleted successfully")
}

// CreateReview 发表评价
// @Summary      发表图书评价
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.ReviewRequest true "评价"
// @Success      201 {object} response.Response{data=appbook.ReviewResponse}
// @Router       /api/v1/books/{id}/reviews [post]
func (h *BookHandler) CreateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	u := middleware.MustGetUser(c)
	resp, err := h.createReviewUseCase.Execute(c.Request.Context(), appbook.CreateReviewRequest{
		BookID:   id,
		UserID:   u.ID,
		UserName: u.Name,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Review created successfully", resp)
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Success      200 {object} response.Response{data=[]appbook.AuthorResponse}
// @Router       /api/v1/authors [get]
func (h *BookHandler) ListAuthors(c *gin.Context) {
	resp, err := h.listAuthorsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// CreateAuthor 新增作者
// @Summary      新增作者（管理员）
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者"
// @Success      201 {object} response.Response{data=appbook.AuthorResponse}
// @Router       /api/v1/authors [post]
func (h *BookHandler) CreateAuthor(c *gin.Context) {
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.createAuthorUseCase.Execute(c.Request.Context(), appbook.CreateAuthorRequest{Name: req.Name, Bio: req.Bio})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Author created successfully", resp)
}

// ListPublishers 出版社列表
// @Summary      出版社列表
// @Tags         出版社
// @Produce      json
// @Success      200 {object} response.Response{data=[]appbook.PublisherResponse}
// @Router       /api/v1/publishers [get]
func (h *BookHandler) ListPublishers(c *gin.Context) {
	resp, err := h.listPublishersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// CreatePublisher 新增出版社
// @Summary      新增出版社（管理员）
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublisherRequest true "出版社"
// @Success      201 {object} response.Response{data=appbook.PublisherResponse}
// @Failure      409 {object} response.Response "名称已存在"
// @Router       /api/v1/publishers [post]
func (h *BookHandler) CreatePublisher(c *gin.Context) {
	var req dto.PublisherRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.createPublisherUseCase.Execute(c.Request.Context(), appbook.CreatePublisherRequest{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Publisher created successfully", resp)
}
